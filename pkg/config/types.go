package config

import (
	"time"
)

// Config represents the complete configuration for the application
type Config struct {
	API           API           `yaml:"api" mapstructure:"api" validate:"required"`
	Display       Display       `yaml:"display" mapstructure:"display"`
	Notifications Notifications `yaml:"notifications" mapstructure:"notifications"`
	Behavior      Behavior      `yaml:"behavior" mapstructure:"behavior"`
}

// API contains connection settings for the statusphere backend
type API struct {
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url" envconfig:"API_URL" validate:"required,url"`
	Token     string        `yaml:"token,omitempty" mapstructure:"token" envconfig:"API_TOKEN"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout" envconfig:"API_TIMEOUT"`
	UserAgent string        `yaml:"user_agent,omitempty" mapstructure:"user_agent"`
	CacheTTL  time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	CacheSize int           `yaml:"cache_size" mapstructure:"cache_size" validate:"gte=0"`
}

// Display controls how statuses and incidents are rendered
type Display struct {
	Language         string `yaml:"language" mapstructure:"language" envconfig:"LANGUAGE" validate:"omitempty,oneof=cs en"`
	Format           string `yaml:"format" mapstructure:"format" envconfig:"FORMAT" validate:"omitempty,oneof=table json yaml csv text"`
	DescriptionLimit int    `yaml:"description_limit" mapstructure:"description_limit" validate:"gte=0"`
	IncidentLimit    int    `yaml:"incident_limit" mapstructure:"incident_limit" validate:"gte=0"`
	SearchLimit      int    `yaml:"search_limit" mapstructure:"search_limit" validate:"gte=0"`
}

// Notifications contains notification configuration
type Notifications struct {
	Slack SlackConfig `yaml:"slack" mapstructure:"slack"`
}

// SlackConfig contains Slack notification settings
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url" envconfig:"WEBHOOK_URL"`
	Channel    string `yaml:"channel" mapstructure:"channel"`
	Username   string `yaml:"username,omitempty" mapstructure:"username"`
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
}

// Behavior contains behavioral configuration
type Behavior struct {
	RateLimit       RateLimit `yaml:"rate_limit" mapstructure:"rate_limit"`
	Retry           Retry     `yaml:"retry" mapstructure:"retry"`
	Concurrency     int       `yaml:"concurrency" mapstructure:"concurrency" validate:"gte=0"`
	RefreshInterval string    `yaml:"refresh_interval" mapstructure:"refresh_interval"`
	TickInterval    string    `yaml:"tick_interval" mapstructure:"tick_interval"`
}

// RateLimit contains rate limiting configuration
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
}

// Retry contains retry configuration
type Retry struct {
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=0"`
	Backoff     time.Duration `yaml:"backoff" mapstructure:"backoff"`
	MaxBackoff  time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
}

// OutputFormat is a supported rendering format
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatCSV   OutputFormat = "csv"
	FormatText  OutputFormat = "text"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatText:
		return true
	default:
		return false
	}
}
