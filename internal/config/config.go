package config

import (
	"time"

	"stock-alert-bot/pkg/config"
)

// Telegram holds configuration for the Telegram bot and alert channel.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// MarketAPI holds the configuration for the market data API.
type MarketAPI struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// RSS holds the configuration for the supplementary RSS news source.
type RSS struct {
	Enabled  bool     `mapstructure:"enabled"`
	FeedURLs []string `mapstructure:"feed_urls"`
}

// Sentiment selects the polarity scorer provider.
type Sentiment struct {
	Provider string `mapstructure:"provider"` // "vader" or "gemini"
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Dedup holds the configuration for the news deduplication store.
type Dedup struct {
	Store     string        `mapstructure:"store"` // "memory" or "redis"
	Retention time.Duration `mapstructure:"retention"`
}

// Scheduler holds the cycle and report schedules.
type Scheduler struct {
	ScanInterval time.Duration `mapstructure:"scan_interval"`
	OutlookCron  string        `mapstructure:"outlook_cron"`
	EODCron      string        `mapstructure:"eod_cron"`
}

// MarketHours holds the trading session boundaries.
type MarketHours struct {
	Open     string `mapstructure:"open"`
	Close    string `mapstructure:"close"`
	Timezone string `mapstructure:"timezone"`
}

// Engine holds the tunable scoring constants exposed through configuration.
type Engine struct {
	VolumeSpikeThreshold float64       `mapstructure:"volume_spike_threshold"`
	DeliveryDelay        time.Duration `mapstructure:"delivery_delay"`
	HistoricalDays       int           `mapstructure:"historical_days"`
}

// Config holds the full configuration for the alert service.
type Config struct {
	App         config.App    `mapstructure:"app"`
	Logger      config.Logger `mapstructure:"logger"`
	Redis       config.Redis  `mapstructure:"redis"`
	API         config.API    `mapstructure:"api"`
	Telegram    Telegram      `mapstructure:"telegram"`
	MarketAPI   MarketAPI     `mapstructure:"market_api"`
	RSS         RSS           `mapstructure:"rss"`
	Sentiment   Sentiment     `mapstructure:"sentiment"`
	Gemini      Gemini        `mapstructure:"gemini"`
	Dedup       Dedup         `mapstructure:"dedup"`
	Scheduler   Scheduler     `mapstructure:"scheduler"`
	MarketHours MarketHours   `mapstructure:"market_hours"`
	Engine      Engine        `mapstructure:"engine"`
}

// Load loads the alert service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
