package repository

import (
	"context"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// CreateBulk は注文明細を一括insertする。orderIDを全行に差し込む。
func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		it.OrderID = orderID
		rows = append(rows, it)
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}

// 履歴表示用にgamesをJOINしてタイトルを引く。
func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]repo.OrderLineView, error) {
	var rows []repo.OrderLineView
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("order_items.order_id, order_items.game_id, games.title AS game_title, order_items.quantity, order_items.price_each").
		Joins("JOIN games ON games.id = order_items.game_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderLineView{}, err
	}
	return rows, nil
}
