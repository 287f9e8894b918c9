package event

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 発行元タグ
const SourceWeb = "game-store-web"

type OrderItem struct {
	GameID   int64           `json:"game_id"`
	Title    string          `json:"title"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderPlaced はキューに流す注文イベント。
type OrderPlaced struct {
	OrderID   int64           `json:"order_id"`
	UserID    int64           `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItem     `json:"items"`
	CreatedAt string          `json:"created_at"` // UTC秒精度 (RFC3339からタイムゾーンを落とした形)
	Source    string          `json:"source"`
}

// Publisher は注文イベントのキュー発行を約束。
// 失敗はエラーで返すだけ。呼び出し側がログして握りつぶす契約（checkoutは絶対に失敗させない）。
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error
}

// Notifier は人間向けの注文通知を約束。失敗の扱いはPublisherと同じ。
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, orderID int64, buyerEmail string, total decimal.Decimal, at time.Time) error
}
