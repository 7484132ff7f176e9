package accounts

import "github.com/labstack/echo/v4"

type Handlers interface {
	ListAccounts() echo.HandlerFunc
	GetAccount() echo.HandlerFunc
	AddAccount() echo.HandlerFunc
	UpdateAccount() echo.HandlerFunc
	RemoveAccount() echo.HandlerFunc
	SetDefaultAccount() echo.HandlerFunc
	GetDefaultAccount() echo.HandlerFunc
}
