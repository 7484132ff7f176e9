package scheduler

import "github.com/labstack/echo/v4"

type Handlers interface {
	ScheduleUpload() echo.HandlerFunc
	ScheduleBatch() echo.HandlerFunc
	ListScheduledUploads() echo.HandlerFunc
	GetScheduledUpload() echo.HandlerFunc
	UpdateScheduledUpload() echo.HandlerFunc
	DeleteScheduledUpload() echo.HandlerFunc
	ProcessNow() echo.HandlerFunc
}
