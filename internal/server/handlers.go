package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	accountsHttp "github.com/uploadstudio/backend/internal/accounts/delivery/http"
	accountsRepository "github.com/uploadstudio/backend/internal/accounts/repository"
	accountsUsecase "github.com/uploadstudio/backend/internal/accounts/usecase"
	eventsWs "github.com/uploadstudio/backend/internal/events/delivery/ws"
	"github.com/uploadstudio/backend/internal/middleware"
	schedulerHttp "github.com/uploadstudio/backend/internal/scheduler/delivery/http"
	schedulerRepository "github.com/uploadstudio/backend/internal/scheduler/repository"
	schedulerUsecase "github.com/uploadstudio/backend/internal/scheduler/usecase"
	uploadsHttp "github.com/uploadstudio/backend/internal/uploads/delivery/http"
	uploadsUsecase "github.com/uploadstudio/backend/internal/uploads/usecase"
	"github.com/uploadstudio/backend/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	queueRepo, err := schedulerRepository.NewQueueFileRepo(s.cfg.Scheduler.QueueFile)
	if err != nil {
		return err
	}
	accountsRepo, err := accountsRepository.NewAccountsFileRepo(s.cfg.Accounts.File)
	if err != nil {
		return err
	}

	schedulerUC := schedulerUsecase.NewSchedulerUseCase(s.cfg, queueRepo, s.registry, s.logger)
	accountsUC := accountsUsecase.NewAccountsUseCase(accountsRepo, s.logger)
	uploadsUC := uploadsUsecase.NewUploadsUseCase(s.cfg, s.registry, s.bus, s.logger)
	uploadsUC.SetScheduler(schedulerUC)

	schedulerUC.Start()
	s.stopScheduler = schedulerUC.Stop

	schedulerHandlers := schedulerHttp.NewSchedulerHandlers(schedulerUC, s.logger)
	uploadsHandlers := uploadsHttp.NewUploadsHandlers(uploadsUC, s.logger)
	accountsHandlers := accountsHttp.NewAccountsHandlers(accountsUC, s.logger)
	eventsHandler := eventsWs.NewHandler(s.bus, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, s.cfg.Server.AllowedOrigins, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	schedulerGroup := v1.Group("/scheduler")
	uploadsGroup := v1.Group("/uploads")
	accountsGroup := v1.Group("/accounts")
	eventsGroup := v1.Group("/events")

	schedulerHttp.MapSchedulerRoutes(schedulerGroup, schedulerHandlers)
	uploadsHttp.MapUploadsRoutes(uploadsGroup, uploadsHandlers)
	accountsHttp.MapAccountsRoutes(accountsGroup, accountsHandlers)
	eventsGroup.GET("/ws", eventsHandler.Stream())

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
