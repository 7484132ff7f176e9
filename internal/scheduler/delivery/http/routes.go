package http

import (
	"github.com/labstack/echo/v4"
	"github.com/uploadstudio/backend/internal/scheduler"
)

func MapSchedulerRoutes(group *echo.Group, h scheduler.Handlers) {
	group.POST("/uploads", h.ScheduleUpload())
	group.POST("/uploads/batch", h.ScheduleBatch())
	group.GET("/uploads", h.ListScheduledUploads())
	group.GET("/uploads/:id", h.GetScheduledUpload())
	group.PUT("/uploads/:id", h.UpdateScheduledUpload())
	group.DELETE("/uploads/:id", h.DeleteScheduledUpload())
	group.POST("/uploads/:id/process", h.ProcessNow())
}
