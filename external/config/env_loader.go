package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/habeshalab/tubebot/internal/config"
)

type envConfig struct {
	Env                  string        `env:"ENV" envDefault:"production"`
	BotToken             string        `env:"BOT_TOKEN,required"`
	YouTubeAPIKey        string        `env:"YOUTUBE_API_KEY,required"`
	DatabaseURL          string        `env:"DATABASE_URL"`
	DownloadsDir         string        `env:"DOWNLOADS_DIR" envDefault:"downloads"`
	ChannelURL           string        `env:"CHANNEL_URL"`
	GroupURL             string        `env:"GROUP_URL"`
	StatusAddr           string        `env:"STATUS_ADDR" envDefault:":3000"`
	SearchMaxResults     int           `env:"SEARCH_MAX_RESULTS" envDefault:"10"`
	ResolverAttempts     int           `env:"RESOLVER_ATTEMPTS" envDefault:"3"`
	ResolverRetryDelay   time.Duration `env:"RESOLVER_RETRY_DELAY" envDefault:"1s"`
	DownloadStallTimeout time.Duration `env:"DOWNLOAD_STALL_TIMEOUT" envDefault:"90s"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                  raw.Env,
		BotToken:             raw.BotToken,
		YouTubeAPIKey:        raw.YouTubeAPIKey,
		DatabaseURL:          raw.DatabaseURL,
		DownloadsDir:         raw.DownloadsDir,
		ChannelURL:           raw.ChannelURL,
		GroupURL:             raw.GroupURL,
		StatusAddr:           raw.StatusAddr,
		SearchMaxResults:     raw.SearchMaxResults,
		ResolverAttempts:     raw.ResolverAttempts,
		ResolverRetryDelay:   raw.ResolverRetryDelay,
		DownloadStallTimeout: raw.DownloadStallTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
