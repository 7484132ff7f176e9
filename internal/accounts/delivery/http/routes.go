package http

import (
	"github.com/labstack/echo/v4"
	"github.com/uploadstudio/backend/internal/accounts"
)

func MapAccountsRoutes(group *echo.Group, h accounts.Handlers) {
	group.GET("", h.ListAccounts())
	group.GET("/default", h.GetDefaultAccount())
	group.POST("", h.AddAccount())
	group.GET("/:id", h.GetAccount())
	group.PUT("/:id", h.UpdateAccount())
	group.DELETE("/:id", h.RemoveAccount())
	group.POST("/:id/default", h.SetDefaultAccount())
}
