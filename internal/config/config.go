package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Scheduler SchedulerConfig
	Accounts  AccountsConfig
	Platforms PlatformsConfig
	Logger    Logger
}

type ServerConfig struct {
	AppVersion     string
	Port           string
	Mode           string
	AllowedOrigins []string
}

type SchedulerConfig struct {
	QueueFile      string
	SweepInterval  time.Duration
	RetentionHours int
}

type AccountsConfig struct {
	File string
}

type PlatformsConfig struct {
	YouTube YouTubeConfig
}

type YouTubeConfig struct {
	ClientID     string
	ClientSecret string
	UploadURL    string
	ThumbnailURL string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Scheduler.SweepInterval <= 0 {
		c.Scheduler.SweepInterval = time.Minute
	}
	return &c, nil
}
