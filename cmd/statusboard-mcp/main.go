package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pacphi/statusboard/internal/mcp"
	"github.com/pacphi/statusboard/pkg/client"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/utils"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	commitSHA = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configFile := flag.String("config", "", "Configuration file path")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); defaults to LOG_LEVEL")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Statusboard MCP Server - Model Context Protocol server for the external services dashboard")
		fmt.Fprintf(os.Stderr, "Version: %s\n\n", version)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  statusboard-mcp [flags]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Requests are read from stdin and answered on stdout. Logs go to stderr.")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("statusboard-mcp version %s (build: %s, commit: %s)\n", version, buildTime, commitSHA)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	logger := utils.NewLogger()
	if *logLevel != "" {
		if err := logger.SetLevelString(*logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --log-level: %v\n", err)
			os.Exit(2)
		}
	}
	utils.SetGlobalLogger(logger)

	logger.Infof("Starting MCP server version %s (build: %s, commit: %s)", version, buildTime, commitSHA)

	cfg, err := config.LoadConfigFromPath(*configFile)
	if err != nil {
		logger.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	apiClient, err := client.NewFromConfig(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to create API client")
		os.Exit(1)
	}
	service := client.NewService(apiClient, cfg.Behavior.Concurrency, cfg.Display.IncidentLimit, cfg.Display.SearchLimit)

	server := mcp.NewMCPServer(cfg, service, version, logger)
	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("MCP server error: %v", err)
		os.Exit(1)
	}

	logger.Info("MCP server shutting down gracefully")
}
