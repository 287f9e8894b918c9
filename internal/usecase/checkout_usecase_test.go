package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"gamestore/internal/cart"
	"gamestore/internal/domain/model"
	"gamestore/internal/event"
	repo "gamestore/internal/repository"
	"gamestore/internal/session"
	"gamestore/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type CheckoutOrderRepoMock struct{ mock.Mock }

func (m *CheckoutOrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CheckoutOrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

type CheckoutOrderItemRepoMock struct{ mock.Mock }

func (m *CheckoutOrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *CheckoutOrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]repo.OrderLineView, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]repo.OrderLineView)
	return items, args.Error(1)
}

// 本物のTx境界の代わり。fnに渡すreposをモックで差し替えるだけ。
type txManagerStub struct {
	orders *CheckoutOrderRepoMock
	items  *CheckoutOrderItemRepoMock
	calls  int
}

func (m *txManagerStub) Orders() repo.OrderRepository         { return m.orders }
func (m *txManagerStub) OrderItems() repo.OrderItemRepository { return m.items }

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.calls++
	return fn(m)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) PublishOrderPlaced(ctx context.Context, ev event.OrderPlaced) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) NotifyOrderPlaced(ctx context.Context, orderID int64, buyerEmail string, total decimal.Decimal, at time.Time) error {
	args := m.Called(ctx, orderID, buyerEmail, total, at)
	return args.Error(0)
}

func newCheckoutFixture() (*usecase.CheckoutUsecase, *txManagerStub, *PublisherMock, *NotifierMock, *captureLogger) {
	tx := &txManagerStub{
		orders: new(CheckoutOrderRepoMock),
		items:  new(CheckoutOrderItemRepoMock),
	}
	pub := new(PublisherMock)
	not := new(NotifierMock)
	log := &captureLogger{}
	clock := &fixedClock{t: time.Date(2026, 8, 29, 12, 30, 45, 123456789, time.UTC)}

	uc := usecase.NewCheckoutUsecase(tx, pub, not, clock, log)
	return uc, tx, pub, not, log
}

func buyerIdent() session.Identity {
	return session.Identity{UserID: 7, Email: "buyer@example.com", Role: model.RoleBuyer}
}

func filledCart(t *testing.T) cart.Cart {
	t.Helper()

	c := cart.New()
	assert.NoError(t, c.Add(1, "Space Quest", mustDecimal(t, "9.99"), 2))
	return c
}

// =====================
// Preconditions
// =====================

func TestCheckoutUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()

	_, err := uc.PlaceOrder(context.Background(), buyerIdent(), cart.New())
	assertHTTPError(t, err, http.StatusBadRequest, "cart empty")
	assert.Equal(t, 0, tx.calls)
}

func TestCheckoutUsecase_PlaceOrder_Unauthenticated(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()

	_, err := uc.PlaceOrder(context.Background(), session.Identity{}, filledCart(t))
	assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")
	assert.Equal(t, 0, tx.calls)
}

func TestCheckoutUsecase_PlaceOrder_SellerForbidden(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()

	ident := session.Identity{UserID: 3, Email: "s@example.com", Role: model.RoleSeller}

	_, err := uc.PlaceOrder(context.Background(), ident, filledCart(t))
	assertHTTPError(t, err, http.StatusForbidden, "only buyers can check out")
	assert.Equal(t, 0, tx.calls)
}

// カートが空なら、ログインしていなくても先に「cart empty」
func TestCheckoutUsecase_PlaceOrder_EmptyCartBeforeAuth(t *testing.T) {
	uc, _, _, _, _ := newCheckoutFixture()

	_, err := uc.PlaceOrder(context.Background(), session.Identity{}, cart.New())
	assertHTTPError(t, err, http.StatusBadRequest, "cart empty")
}

// =====================
// PlaceOrder
// =====================

func TestCheckoutUsecase_PlaceOrder_Success(t *testing.T) {
	uc, tx, pub, not, _ := newCheckoutFixture()
	ctx := context.Background()
	c := filledCart(t)

	wantTotal := mustDecimal(t, "19.98")
	wantCreatedAt := time.Date(2026, 8, 29, 12, 30, 45, 0, time.UTC) // 秒精度に切り捨て

	tx.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 7 &&
			o.TotalAmount.Equal(wantTotal) &&
			o.Status == model.OrderStatusPlaced &&
			o.CreatedAt.Equal(wantCreatedAt)
	})).Return(int64(42), nil)

	tx.items.On("CreateBulk", mock.Anything, int64(42), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 &&
			items[0].GameID == 1 &&
			items[0].Quantity == 2 &&
			items[0].PriceEach.Equal(mustDecimal(t, "9.99"))
	})).Return(nil)

	pub.On("PublishOrderPlaced", mock.Anything, mock.MatchedBy(func(ev event.OrderPlaced) bool {
		return ev.OrderID == 42 &&
			ev.UserID == 7 &&
			ev.Total.Equal(wantTotal) &&
			len(ev.Items) == 1 &&
			ev.CreatedAt == "2026-08-29T12:30:45" &&
			ev.Source == event.SourceWeb
	})).Return(nil)

	not.On("NotifyOrderPlaced", mock.Anything, int64(42), "buyer@example.com", mock.Anything, wantCreatedAt).Return(nil)

	out, err := uc.PlaceOrder(ctx, buyerIdent(), c)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.OrderID)
	assert.True(t, out.Total.Equal(wantTotal))
	assert.Equal(t, string(model.OrderStatusPlaced), out.Status)
	assert.Equal(t, 1, len(out.Items))

	// 成功したらカートは空
	assert.True(t, c.IsEmpty())

	tx.orders.AssertExpectations(t)
	tx.items.AssertExpectations(t)
	pub.AssertExpectations(t)
	not.AssertExpectations(t)
}

func TestCheckoutUsecase_PlaceOrder_DBErrorKeepsCart(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()
	c := filledCart(t)

	tx.orders.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("insert failed"))

	_, err := uc.PlaceOrder(context.Background(), buyerIdent(), c)
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")

	// 失敗時はカートを触らない
	assert.False(t, c.IsEmpty())
}

func TestCheckoutUsecase_PlaceOrder_ItemInsertErrorKeepsCart(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()
	c := filledCart(t)

	tx.orders.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)
	tx.items.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(errors.New("insert failed"))

	_, err := uc.PlaceOrder(context.Background(), buyerIdent(), c)
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")
	assert.False(t, c.IsEmpty())
}

// 通知はベストエフォート。両方落ちてもcheckoutは成功のまま。
func TestCheckoutUsecase_PlaceOrder_NotificationFailuresAreSwallowed(t *testing.T) {
	uc, tx, pub, not, log := newCheckoutFixture()
	c := filledCart(t)

	tx.orders.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)
	tx.items.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(nil)
	pub.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(errors.New("queue down"))
	not.On("NotifyOrderPlaced", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("topic down"))

	out, err := uc.PlaceOrder(context.Background(), buyerIdent(), c)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.OrderID)
	assert.True(t, c.IsEmpty())

	// 失敗はログに2本残る
	assert.Equal(t, 2, len(log.msgs))
}

// =====================
// Summary / ListMyOrders
// =====================

func TestCheckoutUsecase_Summary(t *testing.T) {
	uc, _, _, _, _ := newCheckoutFixture()
	c := filledCart(t)

	out, err := uc.Summary(buyerIdent(), c)
	assert.NoError(t, err)
	assert.True(t, out.Total.Equal(mustDecimal(t, "19.98")))
	assert.Equal(t, int64(2), out.ItemCount)
	assert.Equal(t, 1, len(out.Items))

	// Summaryはカートを消費しない
	assert.False(t, c.IsEmpty())
}

func TestCheckoutUsecase_Summary_EmptyCart(t *testing.T) {
	uc, _, _, _, _ := newCheckoutFixture()

	_, err := uc.Summary(buyerIdent(), cart.New())
	assertHTTPError(t, err, http.StatusBadRequest, "cart empty")
}

func TestCheckoutUsecase_ListMyOrders_Unauthenticated(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()

	_, err := uc.ListMyOrders(context.Background(), session.Identity{})
	assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")
	assert.Equal(t, 0, tx.calls)
}

func TestCheckoutUsecase_ListMyOrders_Success(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()
	ctx := context.Background()

	createdAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	tx.orders.On("ListByUserID", mock.Anything, int64(7)).Return([]model.Order{
		{ID: 42, UserID: 7, TotalAmount: mustDecimal(t, "19.98"), CreatedAt: createdAt, Status: model.OrderStatusPlaced},
	}, nil)
	tx.items.On("ListByOrderID", mock.Anything, int64(42)).Return([]repo.OrderLineView{
		{OrderID: 42, GameID: 1, GameTitle: "Space Quest", Quantity: 2, PriceEach: mustDecimal(t, "9.99")},
	}, nil)

	out, err := uc.ListMyOrders(ctx, buyerIdent())
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, int64(42), out[0].ID)
	assert.Equal(t, 1, len(out[0].Items))
	assert.Equal(t, "Space Quest", out[0].Items[0].GameTitle)
}
