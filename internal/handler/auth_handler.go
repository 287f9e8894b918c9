package handler

import (
	"net/http"

	"gamestore/internal/middleware"
	"gamestore/internal/session"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 会員登録・ログイン・ログアウトのHTTP
type AuthHandler struct {
	uc *usecase.AuthUsecase
	sm *session.Manager
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, sm *session.Manager) *AuthHandler {
	return &AuthHandler{uc: uc, sm: sm}
}

type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	UserType string `json:"user_type" form:"user_type"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/register", h.register)
	e.POST("/login", h.login)
	e.GET("/logout", h.logout)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	// 既存カートは引き継いだままユーザーを結び付ける
	s := middleware.CurrentSession(c)
	s.Identity = session.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
	if err := middleware.SaveSession(c, h.sm, s); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, user)
}

// logoutはユーザーの紐付けだけ壊す。カートは残す。
func (h *AuthHandler) logout(c echo.Context) error {
	s := middleware.CurrentSession(c)
	s.Identity = session.Identity{}

	if err := middleware.SaveSession(c, h.sm, s); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}
