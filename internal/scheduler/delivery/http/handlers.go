package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/scheduler"
	"github.com/uploadstudio/backend/pkg/logger"
	"github.com/uploadstudio/backend/pkg/utils"
)

type schedulerHandlers struct {
	schedulerUC scheduler.UseCase
	logger      logger.Logger
}

func NewSchedulerHandlers(schedulerUC scheduler.UseCase, log logger.Logger) scheduler.Handlers {
	return &schedulerHandlers{schedulerUC: schedulerUC, logger: log}
}

func (h *schedulerHandlers) ScheduleUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &models.UploadRequest{}
		if err := c.Bind(req); err != nil {
			return utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		}
		scheduled, err := h.schedulerUC.ScheduleUpload(c.Request().Context(), req)
		if err != nil {
			return utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusCreated, scheduled)
	}
}

func (h *schedulerHandlers) ScheduleBatch() echo.HandlerFunc {
	return func(c echo.Context) error {
		var reqs []*models.UploadRequest
		if err := c.Bind(&reqs); err != nil {
			return utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		}
		scheduled, err := h.schedulerUC.ScheduleMultipleUploads(c.Request().Context(), reqs)
		if err != nil {
			// Earlier entries are already persisted; return them with the error.
			return c.JSON(http.StatusMultiStatus, map[string]interface{}{
				"scheduled": scheduled,
				"error":     err.Error(),
			})
		}
		return c.JSON(http.StatusCreated, scheduled)
	}
}

func (h *schedulerHandlers) ListScheduledUploads() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var uploads []*models.ScheduledUpload
		switch {
		case c.QueryParam("platform") != "":
			uploads = h.schedulerUC.GetScheduledUploadsForPlatform(ctx, c.QueryParam("platform"))
		case c.QueryParam("account_id") != "":
			uploads = h.schedulerUC.GetScheduledUploadsForAccount(ctx, c.QueryParam("account_id"))
		default:
			uploads = h.schedulerUC.GetScheduledUploads(ctx)
		}

		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		total := len(uploads)
		offset := pagination.GetOffset()
		if offset > total {
			offset = total
		}
		end := offset + pagination.GetLimit()
		if end > total {
			end = total
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"total":      total,
			"totalPages": utils.GetTotalPages(total, pagination.GetLimit()),
			"page":       pagination.Page,
			"hasMore":    utils.GetHasMore(pagination.Page, total, pagination.GetLimit()),
			"uploads":    uploads[offset:end],
		})
	}
}

func (h *schedulerHandlers) GetScheduledUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		upload, err := h.schedulerUC.GetScheduledUpload(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, scheduler.ErrNotFound) {
				return utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			}
			return utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, upload)
	}
}

func (h *schedulerHandlers) UpdateScheduledUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		upd := &models.ScheduledUploadUpdate{}
		if err := c.Bind(upd); err != nil {
			return utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		}
		upload, err := h.schedulerUC.UpdateScheduledUpload(c.Request().Context(), c.Param("id"), upd)
		if err != nil {
			if errors.Is(err, scheduler.ErrNotFound) {
				return utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			}
			return utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, upload)
	}
}

func (h *schedulerHandlers) DeleteScheduledUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.schedulerUC.DeleteScheduledUpload(c.Request().Context(), c.Param("id")) {
			return utils.ErrorResponse(c, http.StatusNotFound, "scheduled upload not found")
		}
		return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
	}
}

func (h *schedulerHandlers) ProcessNow() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := h.schedulerUC.ProcessScheduledUploadNow(c.Request().Context(), c.Param("id"))
		if err != nil {
			switch {
			case errors.Is(err, scheduler.ErrNotFound):
				return utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			case errors.Is(err, scheduler.ErrNotPending):
				return utils.ErrorResponse(c, http.StatusConflict, err.Error())
			default:
				return utils.ErrorResponse(c, http.StatusBadGateway, err.Error())
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"videoId": videoID})
	}
}
