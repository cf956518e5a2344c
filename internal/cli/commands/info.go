package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/utils"
)

// InfoFlags contains flags for the info command
type InfoFlags struct {
	ShowConfig   bool
	ShowBehavior bool
}

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	var flags InfoFlags

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show configuration information",
		Long: `Show detailed information about the current configuration.

This command displays:
- The status API endpoint and client settings
- Display language, output format and limits
- Behavior settings (rate limiting, retry, refresh intervals)
- Notification configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return HandleConfigError(err, "info")
			}
			printInfo(cmd.OutOrStdout(), cfg, flags)
			utils.GetGlobalLogger().Debug("Configuration information displayed successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.ShowConfig, "config-details", false, "show detailed configuration")
	cmd.Flags().BoolVar(&flags.ShowBehavior, "behavior", false, "show behavior settings")

	return cmd
}

// printInfo writes the configuration overview
func printInfo(w io.Writer, cfg *config.Config, flags InfoFlags) {
	fmt.Fprintln(w, "Statusboard - Configuration Information")
	fmt.Fprintln(w, strings.Repeat("=", 39))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "📡 Status API:")
	fmt.Fprintf(w, "  URL: %s\n", cfg.API.BaseURL)
	if cfg.API.Token != "" {
		fmt.Fprintln(w, "  Token: configured")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "🖥️  Display:")
	fmt.Fprintf(w, "  Language: %s\n", cfg.Display.Language)
	fmt.Fprintf(w, "  Format: %s\n", cfg.Display.Format)
	fmt.Fprintln(w)

	if flags.ShowBehavior {
		fmt.Fprintln(w, "⚙️  Behavior:")
		fmt.Fprintf(w, "  Rate Limiting:\n")
		fmt.Fprintf(w, "    Requests per second: %.1f\n", cfg.Behavior.RateLimit.RequestsPerSecond)
		fmt.Fprintf(w, "    Burst: %d\n", cfg.Behavior.RateLimit.Burst)
		fmt.Fprintf(w, "  Retry Configuration:\n")
		fmt.Fprintf(w, "    Max attempts: %d\n", cfg.Behavior.Retry.MaxAttempts)
		fmt.Fprintf(w, "    Initial backoff: %v\n", cfg.Behavior.Retry.Backoff)
		fmt.Fprintf(w, "    Max backoff: %v\n", cfg.Behavior.Retry.MaxBackoff)
		fmt.Fprintf(w, "  Concurrency: %d\n", cfg.Behavior.Concurrency)
		fmt.Fprintf(w, "  Refresh interval: %v\n", cfg.RefreshEvery())
		fmt.Fprintf(w, "  Tick interval: %v\n", cfg.TickEvery())
		fmt.Fprintln(w)
	}

	slack := cfg.Notifications.Slack
	fmt.Fprintln(w, "📢 Notifications:")
	if !slack.Enabled && slack.WebhookURL == "" {
		fmt.Fprintln(w, "  No notifications configured")
	} else {
		channel := slack.Channel
		if channel == "" {
			channel = "webhook default"
		}
		fmt.Fprintf(w, "  • Slack: ✅ Enabled (channel: %s)\n", channel)
	}
	fmt.Fprintln(w)

	if flags.ShowConfig {
		fmt.Fprintln(w, "📄 Detailed Configuration:")
		fmt.Fprintf(w, "  Timeout: %v\n", cfg.API.Timeout)
		fmt.Fprintf(w, "  User agent: %s\n", cfg.API.UserAgent)
		fmt.Fprintf(w, "  Cache: %d entries, TTL %v\n", cfg.API.CacheSize, cfg.API.CacheTTL)
		fmt.Fprintf(w, "  Incident limit: %d\n", cfg.Display.IncidentLimit)
		fmt.Fprintf(w, "  Search limit: %d\n", cfg.Display.SearchLimit)
		fmt.Fprintf(w, "  Description limit: %d\n", cfg.Display.DescriptionLimit)
		fmt.Fprintln(w)
	}
}
