package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/uploadstudio/backend/internal/config"
	"github.com/uploadstudio/backend/internal/events"
	"github.com/uploadstudio/backend/internal/platforms"
	"github.com/uploadstudio/backend/pkg/logger"
)

const (
	maxHeaderBytes = 1 << 20
	readTimeout    = 10 * time.Second
	writeTimeout   = 0 // uploads can stream for a long time
	ctxTimeout     = 5
)

type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	registry *platforms.Registry
	bus      *events.Bus
	logger   logger.Logger

	stopScheduler func()
}

func NewServer(cfg *config.Config, registry *platforms.Registry, bus *events.Bus, logger logger.Logger) *Server {
	return &Server{
		echo:     echo.New(),
		cfg:      cfg,
		registry: registry,
		bus:      bus,
		logger:   logger,
	}
}

func (s *Server) Run() error {
	if err := s.MapHandlers(s.echo); err != nil {
		return err
	}
	s.echo.Server.MaxHeaderBytes = maxHeaderBytes
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	server := &http.Server{
		Addr:         s.cfg.Server.Port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	go func() {
		if err := s.echo.StartServer(server); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("error starting server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit

	if s.stopScheduler != nil {
		s.stopScheduler()
	}

	ctx, shutdown := context.WithTimeout(context.Background(), time.Second*ctxTimeout)
	defer shutdown()
	s.logger.Infof("shutting down server")
	return s.echo.Server.Shutdown(ctx)
}
