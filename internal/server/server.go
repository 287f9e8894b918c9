package server

import (
	"gamestore/internal/handler"
	"gamestore/internal/middleware"
	"gamestore/internal/session"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はechoを組み立ててルートを全部登録する。
func New(
	sm *session.Manager,
	catalogH *handler.CatalogHandler,
	cartH *handler.CartHandler,
	checkoutH *handler.CheckoutHandler,
	sellerH *handler.SellerHandler,
	authH *handler.AuthHandler,
) *echo.Echo {
	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.WithSession(sm))

	catalogH.RegisterRoutes(e)
	cartH.RegisterRoutes(e)
	checkoutH.RegisterRoutes(e)
	sellerH.RegisterRoutes(e)
	authH.RegisterRoutes(e)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
