package usecase

import (
	"context"
	"net/http"
	"time"

	"gamestore/internal/cart"
	"gamestore/internal/domain/model"
	"gamestore/internal/event"
	repo "gamestore/internal/repository"
	"gamestore/internal/session"

	"github.com/shopspring/decimal"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// CheckoutUsecase はカート→注文の確定と、その後の通知（ベストエフォート）。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	publisher event.Publisher
	notifier  event.Notifier
	clock     Clock
	log       Logger
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	publisher event.Publisher,
	notifier event.Notifier,
	clock Clock,
	log Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		publisher: publisher,
		notifier:  notifier,
		clock:     clock,
		log:       log,
	}
}

type CheckoutItemOutput struct {
	GameID    int64           `json:"game_id"`
	Title     string          `json:"title"`
	Quantity  int64           `json:"quantity"`
	PriceEach decimal.Decimal `json:"price_each"`
}

type CheckoutOutput struct {
	OrderID   int64                `json:"order_id"`
	Total     decimal.Decimal      `json:"total"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	Items     []CheckoutItemOutput `json:"items"`
}

// GETで見せるチェックアウトサマリ
type CheckoutSummary struct {
	Items     []cart.Line     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int64           `json:"item_count"`
}

// 注文履歴1件分
type OrderHistoryOutput struct {
	ID          int64                `json:"id"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	CreatedAt   time.Time            `json:"created_at"`
	Status      string               `json:"status"`
	Items       []repo.OrderLineView `json:"items"`
}

// チェックアウトの前提条件。カート空→400、未ログイン→401、buyer以外→403。
func checkoutPreconditions(ident session.Identity, c cart.Cart) error {
	if c.IsEmpty() {
		return NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	if !ident.IsAuthenticated() {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !ident.IsBuyer() {
		return NewHTTPError(http.StatusForbidden, "only buyers can check out")
	}
	return nil
}

// Summary はGET /checkout用。前提条件は注文確定と同じ。
func (u *CheckoutUsecase) Summary(ident session.Identity, c cart.Cart) (CheckoutSummary, error) {
	if err := checkoutPreconditions(ident, c); err != nil {
		return CheckoutSummary{}, err
	}

	items := make([]cart.Line, 0, len(c))
	for _, line := range c {
		items = append(items, line)
	}

	return CheckoutSummary{
		Items:     items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}, nil
}

// PlaceOrder はカートを注文に変換する。
// 注文＋明細は1トランザクション（全部入るか全部入らないか）。
// コミット後の通知2本は失敗してもログだけ。checkoutの結果は変わらない。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, ident session.Identity, c cart.Cart) (CheckoutOutput, error) {
	if err := checkoutPreconditions(ident, c); err != nil {
		return CheckoutOutput{}, err
	}

	total := c.Total()
	createdAt := u.clock.Now().UTC().Truncate(time.Second)

	orderItems := make([]model.OrderItem, 0, len(c))
	eventItems := make([]event.OrderItem, 0, len(c))
	outItems := make([]CheckoutItemOutput, 0, len(c))

	for _, line := range c {
		orderItems = append(orderItems, model.OrderItem{
			GameID:    line.GameID,
			Quantity:  line.Quantity,
			PriceEach: line.Price, // カート投入時点のスナップショット
		})
		eventItems = append(eventItems, event.OrderItem{
			GameID:   line.GameID,
			Title:    line.Title,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
		outItems = append(outItems, CheckoutItemOutput{
			GameID:    line.GameID,
			Title:     line.Title,
			Quantity:  line.Quantity,
			PriceEach: line.Price,
		})
	}

	var orderID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, model.Order{
			UserID:      ident.UserID,
			TotalAmount: total,
			CreatedAt:   createdAt,
			Status:      model.OrderStatusPlaced,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		orderID = id

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	// コミット済み。ここから先はどう転んでもcheckoutは成功。
	c.Clear()

	if err := u.publisher.PublishOrderPlaced(ctx, event.OrderPlaced{
		OrderID:   orderID,
		UserID:    ident.UserID,
		Total:     total,
		Items:     eventItems,
		CreatedAt: createdAt.Format("2006-01-02T15:04:05"),
		Source:    event.SourceWeb,
	}); err != nil {
		u.log.Errorf("SQS send error: %v", err)
	}

	if err := u.notifier.NotifyOrderPlaced(ctx, orderID, ident.Email, total, createdAt); err != nil {
		u.log.Errorf("SNS publish error: %v", err)
	}

	return CheckoutOutput{
		OrderID:   orderID,
		Total:     total,
		Status:    string(model.OrderStatusPlaced),
		CreatedAt: createdAt,
		Items:     outItems,
	}, nil
}

// ListMyOrders は自分の注文履歴（新しい順、明細つき）。
func (u *CheckoutUsecase) ListMyOrders(ctx context.Context, ident session.Identity) ([]OrderHistoryOutput, error) {
	if !ident.IsAuthenticated() {
		return []OrderHistoryOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderHistoryOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, ident.UserID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderHistoryOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, OrderHistoryOutput{
				ID:          o.ID,
				TotalAmount: o.TotalAmount,
				CreatedAt:   o.CreatedAt,
				Status:      string(o.Status),
				Items:       items,
			})
		}
		return nil
	})
	if err != nil {
		return []OrderHistoryOutput{}, err
	}

	return outs, nil
}
