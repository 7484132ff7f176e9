package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/uploadstudio/backend/internal/config"
	"github.com/uploadstudio/backend/internal/events"
	"github.com/uploadstudio/backend/internal/models"
	"github.com/uploadstudio/backend/internal/platforms"
	"github.com/uploadstudio/backend/internal/platforms/instagram"
	"github.com/uploadstudio/backend/internal/platforms/tiktok"
	"github.com/uploadstudio/backend/internal/platforms/youtube"
	"github.com/uploadstudio/backend/internal/server"
	"github.com/uploadstudio/backend/pkg/logger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	log.Println("Starting upload studio backend")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	registry := platforms.NewRegistry()
	registry.Register(models.PlatformTikTok, tiktok.NewUploader())
	registry.Register(models.PlatformInstagram, instagram.NewUploader())

	// The UI normally registers YouTube after its OAuth flow completes; a
	// refresh token in the environment lets headless runs skip that step.
	if refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN"); refreshToken != "" {
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.Platforms.YouTube.ClientID,
			ClientSecret: cfg.Platforms.YouTube.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/youtube.upload"},
		}
		ts := oauthCfg.TokenSource(context.Background(), &oauth2.Token{RefreshToken: refreshToken})
		registry.Register(models.PlatformYouTube, youtube.NewUploader(cfg.Platforms.YouTube, ts, appLogger))
		appLogger.Info("youtube upload service registered")
	}

	bus := events.NewBus()

	s := server.NewServer(cfg, registry, bus, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Infof("could not start server: %s", err)
	}
}
