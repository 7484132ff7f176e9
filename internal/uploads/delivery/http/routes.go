package http

import (
	"github.com/labstack/echo/v4"
	"github.com/uploadstudio/backend/internal/uploads"
)

func MapUploadsRoutes(group *echo.Group, h uploads.Handlers) {
	group.POST("/global", h.StartGlobalUpload())
	group.GET("/active", h.GetActiveUploads())
	group.GET("/active/:upload_id", h.GetUploadInfo())
	group.POST("/:upload_id/cancel", h.CancelUpload())
	group.GET("/video-url", h.GetVideoURL())
}
