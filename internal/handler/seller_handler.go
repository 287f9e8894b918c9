package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"gamestore/internal/middleware"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// セラーの出品管理HTTP。/seller配下は全部seller限定。
type SellerHandler struct {
	uc *usecase.SellerUsecase
}

// DI
func NewSellerHandler(uc *usecase.SellerUsecase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

func (h *SellerHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/seller")
	g.Use(middleware.RequireSeller())

	g.GET("/dashboard", h.dashboard)
	g.POST("/add-game", h.addGame)
	g.POST("/edit-game/:id", h.editGame)
	g.POST("/delete-game/:id", h.deleteGame)
}

func (h *SellerHandler) dashboard(c echo.Context) error {
	s := middleware.CurrentSession(c)

	games, err := h.uc.ListMyGames(c.Request().Context(), s.UserID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, games)
}

func (h *SellerHandler) addGame(c echo.Context) error {
	s := middleware.CurrentSession(c)

	in, closeFn, err := bindGameInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	defer closeFn()

	out, err := h.uc.AddGame(c.Request().Context(), s.UserID, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *SellerHandler) editGame(c echo.Context) error {
	s := middleware.CurrentSession(c)

	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, closeFn, err := bindGameInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	defer closeFn()

	out, err := h.uc.EditGame(c.Request().Context(), s.UserID, gameID, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) deleteGame(c echo.Context) error {
	s := middleware.CurrentSession(c)

	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteGame(c.Request().Context(), s.UserID, gameID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "game deleted"})
}

// multipartフォームからGameInputを組み立てる。image_fileは任意。
func bindGameInput(c echo.Context) (usecase.GameInput, func(), error) {
	in := usecase.GameInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
	}

	closeFn := func() {}

	fileHeader, err := c.FormFile("image_file")
	if err != nil {
		// ファイルなしは普通のケース
		return in, closeFn, nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return usecase.GameInput{}, closeFn, err
	}

	in.Image = &usecase.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     src,
	}
	closeFn = func() { closeMultipart(src) }

	return in, closeFn, nil
}

func closeMultipart(f multipart.File) {
	_ = f.Close()
}
