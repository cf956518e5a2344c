package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pacphi/statusboard/internal/executor"
	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/utils"
	"github.com/pacphi/statusboard/pkg/validation"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	CheckAPI    bool
	CheckPages  bool
	ShowDetails bool
	Timeout     string
}

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var flags ValidateFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and connectivity",
		Long: `Validates the configuration file and tests connectivity to the status API.

This command performs the following checks:
- Configuration file syntax and structure
- Required fields and valid values
- Referenced environment variables
- Reachability of the status API (optional)
- Current status of every status page (optional)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.CheckAPI, "check-api", true, "verify the status API is reachable")
	cmd.Flags().BoolVar(&flags.CheckPages, "check-pages", false, "verify the current status of every status page can be fetched")
	cmd.Flags().BoolVar(&flags.ShowDetails, "show-details", false, "show detailed validation information")
	cmd.Flags().StringVar(&flags.Timeout, "timeout", "30s", "timeout duration for validation operations")

	return cmd
}

// runValidate performs configuration validation
func runValidate(ctx context.Context, flags ValidateFlags) error {
	logger := utils.GetGlobalLogger()

	timeout, err := utils.ParseDuration(flags.Timeout)
	if err != nil || timeout <= 0 {
		return fmt.Errorf("invalid timeout duration: %q", flags.Timeout)
	}

	validateCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("Validating configuration file...")
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	validator := validation.New()
	if err := validator.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	logger.Info("✅ Configuration file is valid")

	logger.Info("Checking environment variables...")
	missing := validator.CheckEnvironmentVariables(cfg)
	if len(missing) > 0 {
		logger.Warnf("Missing environment variables: %v", missing)
	} else {
		logger.Info("✅ All referenced environment variables are set")
	}

	if flags.CheckAPI || flags.CheckPages {
		exec, err := executor.New(cfg)
		if err != nil {
			return err
		}

		logger.Infof("Checking status API at %s...", cfg.API.BaseURL)
		pages, err := exec.Service().ListWithStatus(validateCtx)
		if err != nil {
			return fmt.Errorf("status API check failed: %w", err)
		}
		logger.Infof("✅ Status API reachable, %d status pages", len(pages))

		if flags.CheckPages {
			checkPages(pages, flags.ShowDetails)
		}
	}

	logger.Info("Configuration validation completed successfully")
	printValidationSummary(cfg, flags.ShowDetails)

	return nil
}

// checkPages reports status pages whose current status is unknown
func checkPages(pages []api.StatusPage, showDetails bool) {
	logger := utils.GetGlobalLogger()

	unknown := 0
	for _, page := range pages {
		entry := logger.WithStatusPage(page.Name).WithURL(page.URL)
		if page.Status == api.StatusUnknown {
			unknown++
			entry.Warn("⚠️ Current status unknown")
			continue
		}
		if showDetails {
			entry.Infof("✅ %s", page.Status)
		}
	}

	logger.Infof("Status pages with known status: %d/%d", len(pages)-unknown, len(pages))
}

// printValidationSummary prints a summary of the validation results
func printValidationSummary(cfg *config.Config, verbose bool) {
	logger := utils.GetGlobalLogger()

	logger.Info("=== Validation Summary ===")
	logger.Infof("API: %s", cfg.API.BaseURL)
	logger.Infof("Language: %s, format: %s", cfg.Display.Language, cfg.Display.Format)
	logger.Infof("Slack notifications: %t", cfg.Notifications.Slack.Enabled || cfg.Notifications.Slack.WebhookURL != "")

	if verbose {
		logger.Info("=== Configuration Details ===")
		logger.Infof("Timeout: %s", cfg.API.Timeout)
		logger.Infof("Cache: %d entries for %s", cfg.API.CacheSize, cfg.API.CacheTTL)
		logger.Infof("Rate limit: %.1f req/s, burst %d", cfg.Behavior.RateLimit.RequestsPerSecond, cfg.Behavior.RateLimit.Burst)
		logger.Infof("Retry: %d attempts, backoff %s..%s", cfg.Behavior.Retry.MaxAttempts, cfg.Behavior.Retry.Backoff, cfg.Behavior.Retry.MaxBackoff)
		logger.Infof("Concurrency: %d", cfg.Behavior.Concurrency)
		logger.Infof("Refresh every %s, tick every %s", cfg.RefreshEvery(), cfg.TickEvery())
		logger.Infof("Limits: %d incidents, %d search results, %d description runes",
			cfg.Display.IncidentLimit, cfg.Display.SearchLimit, cfg.Display.DescriptionLimit)
	}
}
