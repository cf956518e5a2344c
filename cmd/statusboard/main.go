package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pacphi/statusboard/internal/cli/commands"
	"github.com/pacphi/statusboard/pkg/utils"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	commitSHA = "unknown"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	logger := utils.NewLogger()
	utils.SetGlobalLogger(logger)

	rootCmd := commands.NewRootCommand(version, buildTime, commitSHA)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.WithError(err).Debug("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
