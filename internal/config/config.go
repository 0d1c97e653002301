package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env                  string
	BotToken             string
	YouTubeAPIKey        string
	DatabaseURL          string
	DownloadsDir         string
	ChannelURL           string
	GroupURL             string
	StatusAddr           string
	SearchMaxResults     int
	ResolverAttempts     int
	ResolverRetryDelay   time.Duration
	DownloadStallTimeout time.Duration
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.SearchMaxResults <= 0 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be positive, got %d", c.SearchMaxResults)
	}
	if c.ResolverAttempts <= 0 {
		return fmt.Errorf("RESOLVER_ATTEMPTS must be positive, got %d", c.ResolverAttempts)
	}
	if c.ResolverRetryDelay < 0 {
		return fmt.Errorf("RESOLVER_RETRY_DELAY must not be negative, got %s", c.ResolverRetryDelay)
	}
	if c.DownloadStallTimeout <= 0 {
		return fmt.Errorf("DOWNLOAD_STALL_TIMEOUT must be positive, got %s", c.DownloadStallTimeout)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "BOT_TOKEN", value: c.BotToken},
		{name: "YOUTUBE_API_KEY", value: c.YouTubeAPIKey},
		{name: "DOWNLOADS_DIR", value: c.DownloadsDir},
		{name: "STATUS_ADDR", value: c.StatusAddr},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
