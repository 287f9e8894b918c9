package model

import "github.com/shopspring/decimal"

// 注文明細。price_eachは注文時点のスナップショットで以後不変。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	GameID    int64           `gorm:"not null;index" json:"game_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	PriceEach decimal.Decimal `gorm:"column:price_each;type:decimal(10,2);not null" json:"price_each"`
}
