package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pacphi/statusboard/internal/executor"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/timefmt"
	"github.com/pacphi/statusboard/pkg/utils"
)

// GlobalFlags contains global command line flags
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Verbose    bool
	Quiet      bool
	Debug      bool
}

// OutputFlags lets a command override the configured display settings
type OutputFlags struct {
	Format   string
	Language string
}

// NewRootCommand creates the root CLI command
func NewRootCommand(version, buildTime, commitSHA string) *cobra.Command {
	var globalFlags GlobalFlags

	rootCmd := &cobra.Command{
		Use:   "statusboard",
		Short: "Status dashboard for external service providers",
		Long: `Statusboard shows the current status and incident history of the external
services we depend on, as collected by the statusphere API.

Durations and "time ago" values are rendered in Czech by default.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupGlobalConfig(globalFlags)
		},
	}

	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{.Name}} version %s
Build time: %s
Commit: %s
`, version, buildTime, commitSHA))

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", "", "log level (debug, info, warn, error); default LOG_LEVEL or info")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogFormat, "log-format", "", "log format (text, json); default LOG_FORMAT or text")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "quiet output")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug logging (equivalent to --log-level debug)")

	// Bind flags to viper
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add subcommands
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewTUICommand())
	rootCmd.AddCommand(NewDurationCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewInfoCommand())
	rootCmd.AddCommand(NewSetupCommand())
	rootCmd.AddCommand(NewTestCommand())

	return rootCmd
}

// setupGlobalConfig rebuilds the global logger from the flags and selects the config file
func setupGlobalConfig(flags GlobalFlags) error {
	if flags.LogFormat != "" {
		_ = os.Setenv("LOG_FORMAT", flags.LogFormat)
	}

	logger := utils.NewLogger()
	if level := flags.level(); level != "" {
		if err := logger.SetLevelString(level); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	utils.SetGlobalLogger(logger)

	// An empty path lets the loader search the usual locations
	viper.SetConfigFile(flags.ConfigFile)

	return nil
}

// level resolves the shorthand flags; --debug and --verbose win over --quiet
func (f GlobalFlags) level() string {
	switch {
	case f.Debug, f.Verbose:
		return "debug"
	case f.Quiet:
		return "error"
	}
	return f.LogLevel
}

// LoadConfig loads the configuration file selected by --config, or the first one found
func LoadConfig() (*config.Config, error) {
	return config.LoadConfigFromPath(viper.ConfigFileUsed())
}

// HandleConfigError provides consistent error handling for configuration loading errors across all commands
func HandleConfigError(err error, operation string) error {
	// Check if this is a configuration validation error that should be displayed cleanly
	var configErr *config.ConfigValidationError
	if errors.As(err, &configErr) {
		fmt.Fprintln(os.Stderr, configErr.Message)
		os.Exit(1)
	}
	return fmt.Errorf("%s: failed to load config: %w", operation, err)
}

// addOutputFlags registers --output and --language on cmd
func addOutputFlags(cmd *cobra.Command, flags *OutputFlags) {
	cmd.Flags().StringVarP(&flags.Format, "output", "o", "", "output format (table, json, yaml, csv, text); default from config")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", "", "language for durations and labels (cs, en); default from config")
}

// apply overrides the display settings of cfg with the flags that were set
func (f OutputFlags) apply(cfg *config.Config) error {
	if f.Format != "" {
		if !config.OutputFormat(f.Format).IsValid() {
			return fmt.Errorf("invalid output format %q (expected table, json, yaml, csv or text)", f.Format)
		}
		cfg.Display.Format = f.Format
	}
	if f.Language != "" {
		lang, err := timefmt.ParseLanguage(f.Language)
		if err != nil {
			return err
		}
		cfg.Display.Language = string(lang)
	}
	return nil
}

// newExecutor loads the configuration, applies output overrides and wires an executor
func newExecutor(operation string, output OutputFlags) (*executor.Executor, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, HandleConfigError(err, operation)
	}
	if err := output.apply(cfg); err != nil {
		return nil, err
	}

	return executor.New(cfg)
}
