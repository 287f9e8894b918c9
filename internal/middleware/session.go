package middleware

import (
	"net/http"
	"os"
	"time"

	"gamestore/internal/session"

	"github.com/labstack/echo/v4"
)

// contextに入れるキー
const CtxSessionKey = "session"

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// WithSession はcookieのセッショントークンを復元してcontextに置く。
// cookieなし・検証失敗は匿名セッション（空カート）で続行する。
func WithSession(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := session.NewAnonymous()

			if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
				if parsed, err := m.Parse(cookie.Value); err == nil {
					s = parsed
				}
			}

			c.Set(CtxSessionKey, s)
			return next(c)
		}
	}
}

// CurrentSession はWithSessionが置いたセッションを取り出す。
func CurrentSession(c echo.Context) *session.Session {
	if s, ok := c.Get(CtxSessionKey).(*session.Session); ok && s != nil {
		return s
	}
	return session.NewAnonymous()
}

// SaveSession はセッションを再発行してcookieに書き戻す。
// カートや認証状態を書き換えたら必ず呼ぶ。
func SaveSession(c echo.Context, m *session.Manager, s *session.Session) error {
	token, err := m.Issue(s, time.Now())
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   envBool("COOKIE_SECURE", true),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.TTL()),
	})

	c.Set(CtxSessionKey, s)
	return nil
}

// RequireLogin は未ログインを401で止める。
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentSession(c).IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}

// RequireSeller は未ログイン401とseller以外403を区別する。
func RequireSeller() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := CurrentSession(c)
			if !s.IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if !s.IsSeller() {
				return c.JSON(http.StatusForbidden, errorJSON("seller only"))
			}
			return next(c)
		}
	}
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
