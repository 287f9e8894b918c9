package repository

import (
	"context"

	"gamestore/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	// 新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
}

// 注文履歴の明細行。タイトルはgamesをJOINして引く。
type OrderLineView struct {
	OrderID   int64           `json:"order_id"`
	GameID    int64           `json:"game_id"`
	GameTitle string          `json:"game_title"`
	Quantity  int64           `json:"quantity"`
	PriceEach decimal.Decimal `json:"price_each"`
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]OrderLineView, error)
}
