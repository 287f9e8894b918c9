package currency

import "github.com/shopspring/decimal"

// FormatEUR は金額をユーロ表記にする（例: €9.99）。
func FormatEUR(amount decimal.Decimal) string {
	return "€" + amount.StringFixed(2)
}
