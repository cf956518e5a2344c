// Package validation performs the semantic checks on a loaded configuration that struct tags cannot express.
package validation

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/timefmt"
	"github.com/pacphi/statusboard/pkg/utils"
)

const (
	maxConcurrency   = 50
	maxIncidentLimit = 500
	maxSearchLimit   = 100

	slackWebhookPrefix = "https://hooks.slack.com/"
)

// Validator provides configuration validation functionality
type Validator struct {
	logger *utils.Logger
}

// New creates a new validator instance
func New() *Validator {
	return &Validator{
		logger: utils.GetGlobalLogger().WithComponent("validator"),
	}
}

// ValidateConfig validates the entire configuration structure and business rules
func (v *Validator) ValidateConfig(cfg *config.Config) error {
	var errors []string

	if err := v.validateAPI(cfg.API); err != nil {
		errors = append(errors, fmt.Sprintf("api: %v", err))
	}

	if err := v.validateDisplay(cfg.Display); err != nil {
		errors = append(errors, fmt.Sprintf("display: %v", err))
	}

	if err := v.validateBehavior(cfg.Behavior); err != nil {
		errors = append(errors, fmt.Sprintf("behavior: %v", err))
	}

	if err := v.validateNotifications(cfg.Notifications); err != nil {
		errors = append(errors, fmt.Sprintf("notifications: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	v.logger.Debug("Configuration is valid")
	return nil
}

func (v *Validator) validateAPI(api config.API) error {
	var errors []string

	u, err := url.Parse(api.BaseURL)
	switch {
	case err != nil:
		errors = append(errors, fmt.Sprintf("base URL is not parseable: %v", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errors = append(errors, "base URL must use http or https")
	case u.Host == "":
		errors = append(errors, "base URL must include a host")
	}

	if api.Timeout < 0 {
		errors = append(errors, "timeout cannot be negative")
	}

	if api.CacheTTL < 0 {
		errors = append(errors, "cache TTL cannot be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

func (v *Validator) validateDisplay(display config.Display) error {
	var errors []string

	if _, err := timefmt.ParseLanguage(display.Language); err != nil {
		errors = append(errors, err.Error())
	}

	if !config.OutputFormat(display.Format).IsValid() {
		errors = append(errors, fmt.Sprintf("unsupported output format %q", display.Format))
	}

	if display.IncidentLimit > maxIncidentLimit {
		errors = append(errors, fmt.Sprintf("incident limit should not exceed %d", maxIncidentLimit))
	}

	if display.SearchLimit > maxSearchLimit {
		errors = append(errors, fmt.Sprintf("search limit should not exceed %d", maxSearchLimit))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

func (v *Validator) validateBehavior(behavior config.Behavior) error {
	var errors []string

	if behavior.Concurrency <= 0 {
		errors = append(errors, "concurrency must be greater than 0")
	}

	if behavior.Concurrency > maxConcurrency {
		errors = append(errors, fmt.Sprintf("concurrency should not exceed %d for rate limiting", maxConcurrency))
	}

	if behavior.RateLimit.RequestsPerSecond < 0 {
		errors = append(errors, "rate limit requests per second cannot be negative")
	}

	if behavior.RateLimit.Burst < 0 {
		errors = append(errors, "rate limit burst cannot be negative")
	}

	if behavior.Retry.MaxAttempts < 0 {
		errors = append(errors, "retry max attempts cannot be negative")
	}

	for name, value := range map[string]string{
		"refresh interval": behavior.RefreshInterval,
		"tick interval":    behavior.TickInterval,
	} {
		if d, err := utils.ParseDuration(value); err != nil || d <= 0 {
			errors = append(errors, fmt.Sprintf("%s %q must be a positive duration", name, value))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// validateNotifications validates notification configuration
func (v *Validator) validateNotifications(notifications config.Notifications) error {
	slack := notifications.Slack

	if slack.WebhookURL != "" && !v.isValidEnvVarReference(slack.WebhookURL) {
		if !strings.HasPrefix(slack.WebhookURL, slackWebhookPrefix) {
			return fmt.Errorf("slack webhook URL should start with %s", slackWebhookPrefix)
		}
	}

	if slack.Channel != "" && !strings.HasPrefix(slack.Channel, "#") && !strings.HasPrefix(slack.Channel, "@") {
		return fmt.Errorf("slack channel %q should start with # or @", slack.Channel)
	}

	return nil
}

// CheckEnvironmentVariables returns the names of referenced environment variables that are not set
func (v *Validator) CheckEnvironmentVariables(cfg *config.Config) []string {
	var missing []string

	for _, value := range []string{cfg.API.Token, cfg.Notifications.Slack.WebhookURL} {
		if !v.isValidEnvVarReference(value) {
			continue
		}
		envVar := v.extractEnvVarName(value)
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	return missing
}

// isValidEnvVarReference checks if a value is an environment variable reference
func (v *Validator) isValidEnvVarReference(value string) bool {
	return len(value) > 1 && value[0] == '$'
}

// extractEnvVarName extracts the environment variable name from a reference
func (v *Validator) extractEnvVarName(value string) string {
	if v.isValidEnvVarReference(value) {
		return value[1:]
	}
	return value
}
