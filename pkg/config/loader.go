package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pacphi/statusboard/pkg/utils"
)

const envPrefix = "statusboard"

// DefaultBaseURL is used when neither the config file nor STATUSBOARD_API_URL set one
const DefaultBaseURL = "http://localhost:8888/"

// ConfigValidationError represents a user-facing configuration validation error
type ConfigValidationError struct {
	Message string
}

func (e *ConfigValidationError) Error() string {
	return e.Message
}

// Loader handles configuration loading and validation
type Loader struct {
	validator *validator.Validate
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		validator: validator.New(),
	}
}

// Load loads configuration from file and environment variables.
//
// An empty path triggers a search of the usual locations. Finding nothing is
// not an error: the dashboard then runs on defaults and environment alone.
func (l *Loader) Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = l.findConfigFile()
	}

	var config Config
	if configPath != "" {
		v := viper.New()
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}

		if err := v.Unmarshal(&config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// Process environment variables
	if err := l.processEnvVars(&config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	// Set defaults
	l.setDefaults(&config)

	// Validate configuration with helpful error messages
	if err := l.validateWithHelpfulErrors(&config); err != nil {
		return nil, err
	}

	// Additional business logic validation
	if err := l.validateBusinessRules(&config); err != nil {
		return nil, fmt.Errorf("config business rules validation failed: %w", err)
	}

	return &config, nil
}

// Save saves configuration to file
func (l *Loader) Save(config *Config, configPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Default returns a configuration populated only with defaults and environment overrides
func Default() *Config {
	var config Config
	loader := NewLoader()
	_ = loader.processEnvVars(&config)
	loader.setDefaults(&config)
	return &config
}

// SearchPaths lists the locations searched when no config path is given
func SearchPaths() []string {
	return []string{
		"config.yaml",
		"config.yml",
		"~/.config/statusboard/config.yaml",
		"~/.statusboard.yaml",
		"/etc/statusboard/config.yaml",
	}
}

// findConfigFile searches for config file in common locations
func (l *Loader) findConfigFile() string {
	for _, location := range SearchPaths() {
		if strings.HasPrefix(location, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				continue
			}
			location = filepath.Join(home, strings.TrimPrefix(location, "~/"))
		}

		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// processEnvVars applies STATUSBOARD_* and SLACK_* overrides
func (l *Loader) processEnvVars(config *Config) error {
	if err := envconfig.Process(envPrefix, &config.API); err != nil {
		return fmt.Errorf("failed to process API env vars: %w", err)
	}

	if err := envconfig.Process(envPrefix, &config.Display); err != nil {
		return fmt.Errorf("failed to process display env vars: %w", err)
	}

	if err := envconfig.Process("slack", &config.Notifications.Slack); err != nil {
		return fmt.Errorf("failed to process Slack env vars: %w", err)
	}

	return nil
}

// setDefaults sets default values for configuration using environment utilities
func (l *Loader) setDefaults(config *Config) {
	if config.API.BaseURL == "" {
		config.API.BaseURL = DefaultBaseURL
	}
	if config.API.Timeout == 0 {
		config.API.Timeout = 30 * time.Second
	}
	if config.API.UserAgent == "" {
		config.API.UserAgent = "statusboard/1.0"
	}
	if config.API.CacheTTL == 0 {
		config.API.CacheTTL = 5 * time.Minute
	}
	if config.API.CacheSize == 0 {
		config.API.CacheSize = 256
	}

	if config.Display.Language == "" {
		config.Display.Language = "cs"
	}
	if config.Display.Format == "" {
		config.Display.Format = string(FormatTable)
	}
	if config.Display.DescriptionLimit == 0 {
		config.Display.DescriptionLimit = 120
	}
	if config.Display.IncidentLimit == 0 {
		config.Display.IncidentLimit = 50
	}
	if config.Display.SearchLimit == 0 {
		config.Display.SearchLimit = 20
	}

	if config.Notifications.Slack.Username == "" {
		config.Notifications.Slack.Username = "Statusboard"
	}

	if config.Behavior.RateLimit.RequestsPerSecond == 0 {
		config.Behavior.RateLimit.RequestsPerSecond = float64(utils.GetEnvInt("RATE_LIMIT_RPS", 10))
	}
	if config.Behavior.RateLimit.Burst == 0 {
		config.Behavior.RateLimit.Burst = utils.GetEnvInt("RATE_LIMIT_BURST", 20)
	}

	if config.Behavior.Retry.MaxAttempts == 0 {
		config.Behavior.Retry.MaxAttempts = utils.GetEnvInt("RETRY_MAX_ATTEMPTS", 3)
	}
	if config.Behavior.Retry.Backoff == 0 {
		config.Behavior.Retry.Backoff = utils.GetEnvDuration("RETRY_BACKOFF", 500*time.Millisecond)
	}
	if config.Behavior.Retry.MaxBackoff == 0 {
		config.Behavior.Retry.MaxBackoff = utils.GetEnvDuration("RETRY_MAX_BACKOFF", 10*time.Second)
	}

	if config.Behavior.Concurrency == 0 {
		config.Behavior.Concurrency = utils.GetEnvInt("CONCURRENCY", 5)
	}

	if config.Behavior.RefreshInterval == "" {
		config.Behavior.RefreshInterval = utils.GetEnv("REFRESH_INTERVAL", "1m")
	}
	if config.Behavior.TickInterval == "" {
		config.Behavior.TickInterval = utils.GetEnv("TICK_INTERVAL", "1s")
	}
}

// validateBusinessRules validates rules the struct tags cannot express
func (l *Loader) validateBusinessRules(config *Config) error {
	refresh, err := utils.ParseDuration(config.Behavior.RefreshInterval)
	if err != nil {
		return fmt.Errorf("invalid refresh_interval '%s': %w", config.Behavior.RefreshInterval, err)
	}
	tick, err := utils.ParseDuration(config.Behavior.TickInterval)
	if err != nil {
		return fmt.Errorf("invalid tick_interval '%s': %w", config.Behavior.TickInterval, err)
	}
	if tick <= 0 || refresh <= 0 {
		return errors.New("refresh_interval and tick_interval must be positive")
	}
	if tick > refresh {
		return fmt.Errorf("tick_interval (%s) must not exceed refresh_interval (%s)", tick, refresh)
	}

	if config.Behavior.Retry.MaxBackoff < config.Behavior.Retry.Backoff {
		return fmt.Errorf("retry max_backoff (%s) is shorter than backoff (%s)",
			config.Behavior.Retry.MaxBackoff, config.Behavior.Retry.Backoff)
	}

	if config.Notifications.Slack.Enabled && config.Notifications.Slack.WebhookURL == "" {
		return errors.New("slack notifications enabled but no webhook URL provided")
	}

	return nil
}

// validateWithHelpfulErrors performs validation with user-friendly error messages
func (l *Loader) validateWithHelpfulErrors(config *Config) error {
	var invalidFields []string

	if u, err := url.Parse(config.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		invalidFields = append(invalidFields, fmt.Sprintf("api.base_url '%s' (must be an absolute http(s) URL, or set STATUSBOARD_API_URL)", config.API.BaseURL))
	}

	if !OutputFormat(config.Display.Format).IsValid() {
		invalidFields = append(invalidFields, fmt.Sprintf("display.format '%s' (expected table, json, yaml, csv or text)", config.Display.Format))
	}

	if config.Display.Language != "cs" && config.Display.Language != "en" {
		invalidFields = append(invalidFields, fmt.Sprintf("display.language '%s' (expected cs or en)", config.Display.Language))
	}

	if len(invalidFields) > 0 {
		var errorMsg strings.Builder
		errorMsg.WriteString("Configuration validation failed:\n")
		errorMsg.WriteString("\nMissing or invalid configuration fields:\n")
		for _, field := range invalidFields {
			errorMsg.WriteString(fmt.Sprintf("  - %s\n", field))
		}
		return &ConfigValidationError{Message: errorMsg.String()}
	}

	// Run standard struct validation for other fields
	if err := l.validator.Struct(config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// LoadConfigFromPath loads configuration from a specific file path
func LoadConfigFromPath(configPath string) (*Config, error) {
	loader := NewLoader()
	return loader.Load(configPath)
}

// RefreshEvery returns the parsed data refresh interval
func (c *Config) RefreshEvery() time.Duration {
	d, err := utils.ParseDuration(c.Behavior.RefreshInterval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// TickEvery returns the parsed "time ago" recompute interval
func (c *Config) TickEvery() time.Duration {
	d, err := utils.ParseDuration(c.Behavior.TickInterval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}
