package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/uploads"
	"github.com/uploadstudio/backend/pkg/logger"
	"github.com/uploadstudio/backend/pkg/utils"
)

type uploadsHandlers struct {
	uploadsUC uploads.UseCase
	logger    logger.Logger
}

func NewUploadsHandlers(uploadsUC uploads.UseCase, log logger.Logger) uploads.Handlers {
	return &uploadsHandlers{uploadsUC: uploadsUC, logger: log}
}

func (h *uploadsHandlers) StartGlobalUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		var reqs []*models.UploadRequest
		if err := c.Bind(&reqs); err != nil {
			return utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		}
		if len(reqs) == 0 {
			return utils.ErrorResponse(c, http.StatusBadRequest, "At least one upload target is required")
		}
		results := h.uploadsUC.StartGlobalUpload(c.Request().Context(), reqs)
		return c.JSON(http.StatusOK, results)
	}
}

func (h *uploadsHandlers) GetActiveUploads() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, h.uploadsUC.GetActiveUploads())
	}
}

func (h *uploadsHandlers) GetUploadInfo() echo.HandlerFunc {
	return func(c echo.Context) error {
		info, ok := h.uploadsUC.GetUploadInfo(c.Param("upload_id"))
		if !ok {
			return utils.ErrorResponse(c, http.StatusNotFound, "upload not found")
		}
		return c.JSON(http.StatusOK, info)
	}
}

func (h *uploadsHandlers) CancelUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		cancelled := h.uploadsUC.CancelUpload(c.Param("upload_id"))
		return c.JSON(http.StatusOK, map[string]bool{"cancelled": cancelled})
	}
}

func (h *uploadsHandlers) GetVideoURL() echo.HandlerFunc {
	return func(c echo.Context) error {
		platform := c.QueryParam("platform")
		videoID := c.QueryParam("video_id")
		if platform == "" || videoID == "" {
			return utils.ErrorResponse(c, http.StatusBadRequest, "platform and video_id params are required")
		}
		return c.JSON(http.StatusOK, map[string]string{
			"url": h.uploadsUC.VideoURL(platform, videoID),
		})
	}
}
