package handler

import (
	"net/http"
	"strconv"

	"gamestore/internal/domain/model"
	"gamestore/internal/middleware"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// 公開カタログのHTTP
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

type CatalogResponse struct {
	Games     []model.Game `json:"games"`
	CartCount int64        `json:"cart_count"`
}

type GameDetailResponse struct {
	Game      model.Game `json:"game"`
	CartCount int64      `json:"cart_count"`
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.index)
	e.GET("/game/:id", h.detail)
}

func (h *CatalogHandler) index(c echo.Context) error {
	games, err := h.uc.ListGames(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	s := middleware.CurrentSession(c)
	return c.JSON(http.StatusOK, CatalogResponse{
		Games:     games,
		CartCount: s.Cart.ItemCount(),
	})
}

func (h *CatalogHandler) detail(c echo.Context) error {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	g, err := h.uc.GetGameDetail(c.Request().Context(), gameID)
	if err != nil {
		return writeError(c, err)
	}

	s := middleware.CurrentSession(c)
	return c.JSON(http.StatusOK, GameDetailResponse{
		Game:      g,
		CartCount: s.Cart.ItemCount(),
	})
}
