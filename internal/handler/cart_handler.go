package handler

import (
	"net/http"
	"strconv"

	"gamestore/internal/cart"
	"gamestore/internal/middleware"
	"gamestore/internal/session"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// セッションカートのHTTP
type CartHandler struct {
	catalog *usecase.CatalogUsecase
	sm      *session.Manager
}

// DI
func NewCartHandler(catalog *usecase.CatalogUsecase, sm *session.Manager) *CartHandler {
	return &CartHandler{catalog: catalog, sm: sm}
}

type CartResponse struct {
	Items     []cart.Line     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int64           `json:"item_count"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/add-to-cart/:id", h.addToCart)
	e.GET("/cart", h.getCart)
	e.GET("/cart/clear", h.clearCart)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	// 価格スナップショットはこの時点のDB値
	g, err := h.catalog.GetGameDetail(c.Request().Context(), gameID)
	if err != nil {
		return writeError(c, err)
	}

	s := middleware.CurrentSession(c)
	if err := s.Cart.Add(g.ID, g.Title, g.Price, 1); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	if err := middleware.SaveSession(c, h.sm, s); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, toCartResponse(s.Cart))
}

func (h *CartHandler) getCart(c echo.Context) error {
	s := middleware.CurrentSession(c)
	return c.JSON(http.StatusOK, toCartResponse(s.Cart))
}

func (h *CartHandler) clearCart(c echo.Context) error {
	s := middleware.CurrentSession(c)
	s.Cart.Clear()

	if err := middleware.SaveSession(c, h.sm, s); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, toCartResponse(s.Cart))
}

func toCartResponse(ct cart.Cart) CartResponse {
	items := make([]cart.Line, 0, len(ct))
	for _, line := range ct {
		items = append(items, line)
	}

	return CartResponse{
		Items:     items,
		Total:     ct.Total(),
		ItemCount: ct.ItemCount(),
	}
}
