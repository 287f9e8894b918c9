package cart

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	// 入力が不正
	ErrInvalidQuantity = errors.New("quantity must be >= 1")
	ErrNegativePrice   = errors.New("price must not be negative")
)

// Line はカートの1明細。Priceは追加時点のスナップショット。
type Line struct {
	GameID   int64           `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// Cart はセッションに載るカート本体。game idの文字列をキーにする。
// DBとは一切関係を持たない（セッション専有のスナップショット）。
type Cart map[string]Line

func New() Cart {
	return Cart{}
}

// Add は明細追加。同じgame idなら数量を加算する。
func (c Cart) Add(gameID int64, title string, price decimal.Decimal, qty int64) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if price.IsNegative() {
		return ErrNegativePrice
	}

	key := strconv.FormatInt(gameID, 10)

	if line, ok := c[key]; ok {
		line.Quantity += qty
		c[key] = line
		return nil
	}

	c[key] = Line{
		GameID:   gameID,
		Title:    title,
		Price:    price,
		Quantity: qty,
	}
	return nil
}

// Total は price×quantity の合計。
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// ItemCount は数量の合計。
func (c Cart) ItemCount() int64 {
	var n int64
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Clear は全明細を落とす。
func (c Cart) Clear() {
	for key := range c {
		delete(c, key)
	}
}
