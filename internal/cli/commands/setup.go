package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/utils"
)

// SetupFlags contains flags for setup commands
type SetupFlags struct {
	ConfigPath string
	APIURL     string
	Language   string
	Force      bool
	Backup     bool
}

// NewSetupCommand creates the setup command group
func NewSetupCommand() *cobra.Command {
	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Set up statusboard configuration",
		Long: `Setup commands help you configure statusboard.

Available setup options:
- config: Write a configuration file populated with defaults
- restore: Restore the configuration from the latest backup`,
	}

	setupCmd.AddCommand(NewSetupConfigCommand())
	setupCmd.AddCommand(NewSetupRestoreCommand())

	return setupCmd
}

// NewSetupConfigCommand creates the setup config command
func NewSetupConfigCommand() *cobra.Command {
	var flags SetupFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write a default configuration file",
		Long:  "Writes a configuration file with every setting at its default value, ready for editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetupConfig(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "file", "f", "config.yaml", "configuration file path")
	cmd.Flags().StringVar(&flags.APIURL, "api-url", "", "status API base URL")
	cmd.Flags().StringVar(&flags.Language, "language", "", "display language (cs, en)")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.Backup, "backup", true, "backup existing configuration before overwriting")

	return cmd
}

// NewSetupRestoreCommand creates the setup restore command
func NewSetupRestoreCommand() *cobra.Command {
	var flags SetupFlags

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore configuration from the latest backup",
		Long:  "Restores configuration from the most recent backup file in the .backups directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RestoreConfig(flags.ConfigPath)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "file", "f", "config.yaml", "configuration file path to restore")

	return cmd
}

// runSetupConfig writes a default configuration file
func runSetupConfig(flags SetupFlags) error {
	logger := utils.GetGlobalLogger()

	if _, err := os.Stat(flags.ConfigPath); err == nil {
		if !flags.Force {
			return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", flags.ConfigPath)
		}
		if flags.Backup {
			if err := BackupConfig(flags.ConfigPath); err != nil {
				return err
			}
		}
	}

	cfg := config.Default()
	if flags.APIURL != "" {
		cfg.API.BaseURL = flags.APIURL
	}
	if flags.Language != "" {
		cfg.Display.Language = flags.Language
	}

	loader := config.NewLoader()
	if err := loader.Save(cfg, flags.ConfigPath); err != nil {
		return err
	}

	// Load it back so a bad --api-url or --language is reported now
	if _, err := loader.Load(flags.ConfigPath); err != nil {
		return fmt.Errorf("written configuration is invalid: %w", err)
	}

	logger.Infof("Configuration file written to %s", flags.ConfigPath)
	logger.Info("Run 'statusboard validate' to check your configuration")

	return nil
}

// BackupConfig creates a backup of the current configuration
func BackupConfig(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No existing config to backup
	}

	backupDir := filepath.Join(filepath.Dir(configPath), ".backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	basename := filepath.Base(configPath)
	timestamp := time.Now().Format("20060102-150405.000")
	backupPath := filepath.Join(backupDir, fmt.Sprintf("%s.%s.bak", basename, timestamp))

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	utils.GetGlobalLogger().Infof("Configuration backed up to %s", backupPath)

	return nil
}

// RestoreConfig restores configuration from the latest backup
func RestoreConfig(configPath string) error {
	backupDir := filepath.Join(filepath.Dir(configPath), ".backups")
	basename := filepath.Base(configPath)

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return fmt.Errorf("failed to read backup directory: %w", err)
	}

	var latestBackup string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".bak" && strings.HasPrefix(name, basename) {
			if latestBackup == "" || name > latestBackup {
				latestBackup = name
			}
		}
	}

	if latestBackup == "" {
		return fmt.Errorf("no backup files found")
	}

	backupPath := filepath.Join(backupDir, latestBackup)

	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to restore configuration: %w", err)
	}

	utils.GetGlobalLogger().Infof("Configuration restored from %s", backupPath)

	return nil
}
