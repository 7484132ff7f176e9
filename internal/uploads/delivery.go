package uploads

import "github.com/labstack/echo/v4"

type Handlers interface {
	StartGlobalUpload() echo.HandlerFunc
	GetActiveUploads() echo.HandlerFunc
	GetUploadInfo() echo.HandlerFunc
	CancelUpload() echo.HandlerFunc
	GetVideoURL() echo.HandlerFunc
}
