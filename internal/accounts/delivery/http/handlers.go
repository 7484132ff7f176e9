package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/accounts"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/pkg/logger"
	"github.com/uploadstudio/backend/pkg/utils"
)

type accountsHandlers struct {
	accountsUC accounts.UseCase
	logger     logger.Logger
}

func NewAccountsHandlers(accountsUC accounts.UseCase, log logger.Logger) accounts.Handlers {
	return &accountsHandlers{accountsUC: accountsUC, logger: log}
}

func (h *accountsHandlers) ListAccounts() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if platform := c.QueryParam("platform"); platform != "" {
			return c.JSON(http.StatusOK, h.accountsUC.GetAccountsForPlatform(ctx, platform))
		}
		return c.JSON(http.StatusOK, h.accountsUC.GetAccounts(ctx))
	}
}

func (h *accountsHandlers) GetAccount() echo.HandlerFunc {
	return func(c echo.Context) error {
		account, err := h.accountsUC.GetAccount(c.Request().Context(), c.Param("id"))
		if err != nil {
			return utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusOK, account)
	}
}

func (h *accountsHandlers) AddAccount() echo.HandlerFunc {
	return func(c echo.Context) error {
		account := &models.Account{}
		if err := c.Bind(account); err != nil {
			return utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		}
		added, err := h.accountsUC.AddAccount(c.Request().Context(), account)
		if err != nil {
			return utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusCreated, added)
	}
}

func (h *accountsHandlers) UpdateAccount() echo.HandlerFunc {
	return func(c echo.Context) error {
		upd := &models.AccountUpdate{}
		if err := c.Bind(upd); err != nil {
			return utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		}
		account, err := h.accountsUC.UpdateAccount(c.Request().Context(), c.Param("id"), upd)
		if err != nil {
			if errors.Is(err, accounts.ErrNotFound) {
				return utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			}
			return utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, account)
	}
}

func (h *accountsHandlers) RemoveAccount() echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.accountsUC.RemoveAccount(c.Request().Context(), c.Param("id")) {
			return utils.ErrorResponse(c, http.StatusNotFound, "account not found")
		}
		return c.JSON(http.StatusOK, map[string]bool{"removed": true})
	}
}

func (h *accountsHandlers) SetDefaultAccount() echo.HandlerFunc {
	return func(c echo.Context) error {
		account, err := h.accountsUC.SetDefaultAccount(c.Request().Context(), c.Param("id"))
		if err != nil {
			return utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusOK, account)
	}
}

func (h *accountsHandlers) GetDefaultAccount() echo.HandlerFunc {
	return func(c echo.Context) error {
		platform := c.QueryParam("platform")
		if platform == "" {
			return utils.ErrorResponse(c, http.StatusBadRequest, "platform param is required")
		}
		account, err := h.accountsUC.GetDefaultAccount(c.Request().Context(), platform)
		if err != nil {
			return utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusOK, account)
	}
}
