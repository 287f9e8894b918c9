package repository

import (
	"context"
	"errors"

	"gamestore/internal/domain/model"
	repo "gamestore/internal/repository"

	"gorm.io/gorm"
)

type GameGormRepository struct {
	db *gorm.DB
}

func NewGameGormRepository(db *gorm.DB) *GameGormRepository {
	return &GameGormRepository{db: db}
}

func (r *GameGormRepository) ListAll(ctx context.Context) ([]model.Game, error) {
	var items []model.Game
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&items).Error
	if err != nil {
		return []model.Game{}, err
	}
	return items, nil
}

func (r *GameGormRepository) FindByID(ctx context.Context, id int64) (model.Game, error) {
	var g model.Game
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Game{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Game{}, err
	}
	return g, nil
}

func (r *GameGormRepository) ListBySellerID(ctx context.Context, sellerID int64) ([]model.Game, error) {
	var items []model.Game
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Game{}, err
	}
	return items, nil
}

func (r *GameGormRepository) FindByIDAndSellerID(ctx context.Context, id int64, sellerID int64) (model.Game, error) {
	var g model.Game
	err := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Game{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Game{}, err
	}
	return g, nil
}

func (r *GameGormRepository) Create(ctx context.Context, g model.Game) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&g).Error; err != nil {
		return 0, err
	}
	return g.ID, nil
}

// Update はidとseller_idの両方が一致する行だけを書き換える。
func (r *GameGormRepository) Update(ctx context.Context, g model.Game) error {
	res := r.db.WithContext(ctx).Model(&model.Game{}).
		Where("id = ? AND seller_id = ?", g.ID, g.SellerID).
		Updates(map[string]interface{}{
			"title":       g.Title,
			"description": g.Description,
			"price":       g.Price,
			"image_url":   g.ImageURL,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 他セラーのidを渡されても0件削除で終わる（存在は漏らさない）。
func (r *GameGormRepository) DeleteByIDAndSellerID(ctx context.Context, id int64, sellerID int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Delete(&model.Game{}).Error
}
