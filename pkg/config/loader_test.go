package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv keeps the host environment and home directory out of a test
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STATUSBOARD_API_URL", "STATUSBOARD_API_TOKEN", "STATUSBOARD_API_TIMEOUT",
		"STATUSBOARD_LANGUAGE", "STATUSBOARD_FORMAT",
		"SLACK_WEBHOOK_URL", "SLACK_CHANNEL", "SLACK_ENABLED",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CONCURRENCY",
		"REFRESH_INTERVAL", "TICK_INTERVAL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("HOME", t.TempDir())
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.validator)
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name        string
		setupFile   func(t *testing.T) string
		setupEnv    func(t *testing.T)
		expectError bool
		validate    func(t *testing.T, config *Config)
	}{
		{
			name: "full config file",
			setupFile: func(t *testing.T) string {
				return createTempConfigFile(t, `
api:
  base_url: "https://statusphere.example.com/"
  timeout: 10s
  cache_ttl: 1m
display:
  language: en
  format: json
  search_limit: 5
notifications:
  slack:
    webhook_url: "https://hooks.slack.com/services/T/B/X"
    channel: "#status"
    enabled: true
behavior:
  concurrency: 8
  refresh_interval: 30s
  tick_interval: 2s
`)
			},
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, "https://statusphere.example.com/", config.API.BaseURL)
				assert.Equal(t, 10*time.Second, config.API.Timeout)
				assert.Equal(t, time.Minute, config.API.CacheTTL)
				assert.Equal(t, "en", config.Display.Language)
				assert.Equal(t, "json", config.Display.Format)
				assert.Equal(t, 5, config.Display.SearchLimit)
				assert.Equal(t, 50, config.Display.IncidentLimit)
				assert.True(t, config.Notifications.Slack.Enabled)
				assert.Equal(t, "#status", config.Notifications.Slack.Channel)
				assert.Equal(t, 8, config.Behavior.Concurrency)
				assert.Equal(t, 30*time.Second, config.RefreshEvery())
				assert.Equal(t, 2*time.Second, config.TickEvery())
			},
		},
		{
			name: "no config file found uses defaults",
			setupFile: func(t *testing.T) string {
				t.Chdir(t.TempDir())
				return ""
			},
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, DefaultBaseURL, config.API.BaseURL)
				assert.Equal(t, "cs", config.Display.Language)
				assert.Equal(t, "table", config.Display.Format)
			},
		},
		{
			name: "environment overrides file",
			setupFile: func(t *testing.T) string {
				return createTempConfigFile(t, `
api:
  base_url: "https://from-file.example.com"
`)
			},
			setupEnv: func(t *testing.T) {
				t.Setenv("STATUSBOARD_API_URL", "https://from-env.example.com")
				t.Setenv("STATUSBOARD_LANGUAGE", "en")
			},
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, "https://from-env.example.com", config.API.BaseURL)
				assert.Equal(t, "en", config.Display.Language)
			},
		},
		{
			name: "invalid base url",
			setupFile: func(t *testing.T) string {
				return createTempConfigFile(t, `
api:
  base_url: "not a url"
`)
			},
			expectError: true,
		},
		{
			name: "unsupported language",
			setupFile: func(t *testing.T) string {
				return createTempConfigFile(t, `
display:
  language: de
`)
			},
			expectError: true,
		},
		{
			name: "config file does not exist",
			setupFile: func(t *testing.T) string {
				return "/nonexistent/config.yaml"
			},
			expectError: true,
		},
		{
			name: "invalid yaml format",
			setupFile: func(t *testing.T) string {
				return createTempConfigFile(t, `
api:
  base_url: "http://localhost
# Missing closing quote - invalid YAML
`)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			if tt.setupEnv != nil {
				tt.setupEnv(t)
			}

			configPath := tt.setupFile(t)

			loader := NewLoader()
			config, err := loader.Load(configPath)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, config)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, config)
			if tt.validate != nil {
				tt.validate(t, config)
			}
		})
	}
}

func TestLoader_Load_HelpfulErrors(t *testing.T) {
	isolateEnv(t)

	path := createTempConfigFile(t, `
api:
  base_url: "ftp-less"
display:
  format: html
`)

	_, err := NewLoader().Load(path)
	require.Error(t, err)

	var validationErr *ConfigValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "api.base_url 'ftp-less'")
	assert.Contains(t, err.Error(), "display.format 'html'")
}

func TestLoader_Save(t *testing.T) {
	isolateEnv(t)
	loader := NewLoader()

	config := Default()
	config.API.BaseURL = "https://statusphere.example.com"
	config.Notifications.Slack.Channel = "#incidents"

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, loader.Save(config, configPath))
	assert.FileExists(t, configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://statusphere.example.com")
	assert.Contains(t, string(data), "#incidents")

	reloaded, err := loader.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.API.BaseURL, reloaded.API.BaseURL)
	assert.Equal(t, config.Behavior.RefreshInterval, reloaded.Behavior.RefreshInterval)
}

func TestLoader_findConfigFile(t *testing.T) {
	loader := NewLoader()

	t.Run("find config in current directory", func(t *testing.T) {
		isolateEnv(t)
		tmpDir := t.TempDir()
		t.Chdir(tmpDir)

		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("api: {}"), 0644))

		assert.Equal(t, "config.yaml", loader.findConfigFile())
	})

	t.Run("find config in home directory", func(t *testing.T) {
		isolateEnv(t)
		t.Chdir(t.TempDir())

		home := os.Getenv("HOME")
		require.NoError(t, os.WriteFile(filepath.Join(home, ".statusboard.yaml"), []byte("api: {}"), 0644))

		assert.Equal(t, filepath.Join(home, ".statusboard.yaml"), loader.findConfigFile())
	})

	t.Run("no config file found", func(t *testing.T) {
		isolateEnv(t)
		t.Chdir(t.TempDir())

		assert.Empty(t, loader.findConfigFile())
	})
}

func TestLoader_setDefaults(t *testing.T) {
	isolateEnv(t)
	loader := NewLoader()

	t.Run("empty config", func(t *testing.T) {
		config := &Config{}
		loader.setDefaults(config)

		assert.Equal(t, DefaultBaseURL, config.API.BaseURL)
		assert.Equal(t, 30*time.Second, config.API.Timeout)
		assert.Equal(t, "statusboard/1.0", config.API.UserAgent)
		assert.Equal(t, 5*time.Minute, config.API.CacheTTL)
		assert.Equal(t, 256, config.API.CacheSize)
		assert.Equal(t, "cs", config.Display.Language)
		assert.Equal(t, "table", config.Display.Format)
		assert.Equal(t, 120, config.Display.DescriptionLimit)
		assert.Equal(t, 50, config.Display.IncidentLimit)
		assert.Equal(t, 20, config.Display.SearchLimit)
		assert.Equal(t, "Statusboard", config.Notifications.Slack.Username)
		assert.Equal(t, 10.0, config.Behavior.RateLimit.RequestsPerSecond)
		assert.Equal(t, 20, config.Behavior.RateLimit.Burst)
		assert.Equal(t, 3, config.Behavior.Retry.MaxAttempts)
		assert.Equal(t, 500*time.Millisecond, config.Behavior.Retry.Backoff)
		assert.Equal(t, 10*time.Second, config.Behavior.Retry.MaxBackoff)
		assert.Equal(t, 5, config.Behavior.Concurrency)
		assert.Equal(t, "1m", config.Behavior.RefreshInterval)
		assert.Equal(t, "1s", config.Behavior.TickInterval)
	})

	t.Run("preserve existing values", func(t *testing.T) {
		config := &Config{
			API:      API{BaseURL: "https://example.com", Timeout: time.Second},
			Display:  Display{Language: "en", SearchLimit: 3},
			Behavior: Behavior{Concurrency: 2, RefreshInterval: "5m"},
		}
		loader.setDefaults(config)

		assert.Equal(t, "https://example.com", config.API.BaseURL)
		assert.Equal(t, time.Second, config.API.Timeout)
		assert.Equal(t, "en", config.Display.Language)
		assert.Equal(t, 3, config.Display.SearchLimit)
		assert.Equal(t, 2, config.Behavior.Concurrency)
		assert.Equal(t, "5m", config.Behavior.RefreshInterval)
	})

	t.Run("environment defaults", func(t *testing.T) {
		t.Setenv("CONCURRENCY", "12")
		t.Setenv("REFRESH_INTERVAL", "2m")

		config := &Config{}
		loader.setDefaults(config)

		assert.Equal(t, 12, config.Behavior.Concurrency)
		assert.Equal(t, "2m", config.Behavior.RefreshInterval)
	})
}

func TestLoader_validateBusinessRules(t *testing.T) {
	loader := NewLoader()

	valid := func() *Config {
		config := &Config{}
		loader.setDefaults(config)
		return config
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:        "unparseable refresh interval",
			mutate:      func(c *Config) { c.Behavior.RefreshInterval = "soon" },
			expectError: true,
			errorMsg:    "invalid refresh_interval",
		},
		{
			name:        "unparseable tick interval",
			mutate:      func(c *Config) { c.Behavior.TickInterval = "often" },
			expectError: true,
			errorMsg:    "invalid tick_interval",
		},
		{
			name:        "tick longer than refresh",
			mutate:      func(c *Config) { c.Behavior.TickInterval = "2m" },
			expectError: true,
			errorMsg:    "must not exceed refresh_interval",
		},
		{
			name:        "zero tick",
			mutate:      func(c *Config) { c.Behavior.TickInterval = "0s" },
			expectError: true,
			errorMsg:    "must be positive",
		},
		{
			name:   "day based refresh",
			mutate: func(c *Config) { c.Behavior.RefreshInterval = "1d" },
		},
		{
			name: "max backoff shorter than backoff",
			mutate: func(c *Config) {
				c.Behavior.Retry.Backoff = 5 * time.Second
				c.Behavior.Retry.MaxBackoff = time.Second
			},
			expectError: true,
			errorMsg:    "retry max_backoff",
		},
		{
			name:        "slack enabled without webhook",
			mutate:      func(c *Config) { c.Notifications.Slack.Enabled = true },
			expectError: true,
			errorMsg:    "no webhook URL provided",
		},
		{
			name: "slack enabled with webhook",
			mutate: func(c *Config) {
				c.Notifications.Slack.Enabled = true
				c.Notifications.Slack.WebhookURL = "$SLACK_WEBHOOK"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)

			err := loader.validateBusinessRules(config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoader_processEnvVars(t *testing.T) {
	isolateEnv(t)
	t.Setenv("STATUSBOARD_API_URL", "https://env.example.com")
	t.Setenv("STATUSBOARD_API_TOKEN", "secret")
	t.Setenv("STATUSBOARD_API_TIMEOUT", "5s")
	t.Setenv("STATUSBOARD_FORMAT", "csv")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/env")

	config := &Config{}
	require.NoError(t, NewLoader().processEnvVars(config))

	assert.Equal(t, "https://env.example.com", config.API.BaseURL)
	assert.Equal(t, "secret", config.API.Token)
	assert.Equal(t, 5*time.Second, config.API.Timeout)
	assert.Equal(t, "csv", config.Display.Format)
	assert.Equal(t, "https://hooks.slack.com/env", config.Notifications.Slack.WebhookURL)
}

func TestLoader_processEnvVars_InvalidDuration(t *testing.T) {
	isolateEnv(t)
	t.Setenv("STATUSBOARD_API_TIMEOUT", "forever")

	err := NewLoader().processEnvVars(&Config{})
	assert.Error(t, err)
}

func TestLoadConfigFromPath(t *testing.T) {
	isolateEnv(t)
	_, err := LoadConfigFromPath("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	isolateEnv(t)
	t.Setenv("STATUSBOARD_API_URL", "https://default.example.com")

	config := Default()
	assert.Equal(t, "https://default.example.com", config.API.BaseURL)
	assert.Equal(t, time.Minute, config.RefreshEvery())
	assert.Equal(t, time.Second, config.TickEvery())
}

func TestConfig_IntervalFallbacks(t *testing.T) {
	config := &Config{Behavior: Behavior{RefreshInterval: "bogus", TickInterval: "-1s"}}

	assert.Equal(t, time.Minute, config.RefreshEvery())
	assert.Equal(t, time.Second, config.TickEvery())
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Benchmark tests
func BenchmarkLoader_Load(b *testing.B) {
	content := `
api:
  base_url: "https://statusphere.example.com"
display:
  language: cs
`
	path := filepath.Join(b.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		b.Fatal(err)
	}

	loader := NewLoader()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := loader.Load(path); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoader_setDefaults(b *testing.B) {
	loader := NewLoader()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		loader.setDefaults(&Config{})
	}
}
