package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "PLACED"
)

// CreatedAtはアプリ側でUTC秒精度をセットする（autoCreateTimeは使わない）
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
}
