package handler

import (
	"net/http"

	"gamestore/internal/middleware"
	"gamestore/internal/session"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チェックアウトと注文履歴のHTTP
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
	sm *session.Manager
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, sm *session.Manager) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, sm: sm}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/checkout", h.summary)
	e.POST("/checkout", h.placeOrder)
	e.GET("/orders", h.myOrders)
}

func (h *CheckoutHandler) summary(c echo.Context) error {
	s := middleware.CurrentSession(c)

	out, err := h.uc.Summary(s.Identity, s.Cart)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) placeOrder(c echo.Context) error {
	s := middleware.CurrentSession(c)

	out, err := h.uc.PlaceOrder(c.Request().Context(), s.Identity, s.Cart)
	if err != nil {
		return writeError(c, err)
	}

	// usecase側でカートは空になっている。cookieに書き戻す。
	if err := middleware.SaveSession(c, h.sm, s); err != nil {
		// 注文は確定済みなので結果は返す。cookieの書き戻し失敗はログだけ。
		c.Logger().Errorf("session save after checkout failed: %v", err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CheckoutHandler) myOrders(c echo.Context) error {
	s := middleware.CurrentSession(c)

	out, err := h.uc.ListMyOrders(c.Request().Context(), s.Identity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
