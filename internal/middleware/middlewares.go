package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uploadstudio/backend/internal/config"
	"github.com/uploadstudio/backend/pkg/logger"
	"github.com/uploadstudio/backend/pkg/utils"
)

type MiddlewareManager struct {
	cfg     *config.Config
	origins []string
	logger  logger.Logger
}

// Middleware manager constructor
func NewMiddlewareManager(cfg *config.Config, origins []string, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{cfg: cfg, origins: origins, logger: logger}
}

// RequestLoggerMiddleware logs one line per request with status and latency.
func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		res := c.Response()
		status := res.Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		mw.logger.Infof("%s %s, Status: %d, RequestID: %s, Time: %s",
			req.Method, req.RequestURI, status, utils.GetRequestID(c), time.Since(start),
		)
		return err
	}
}
