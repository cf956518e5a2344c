package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pacphi/statusboard/internal/executor"
	"github.com/pacphi/statusboard/pkg/utils"
)

// TestFlags contains flags for the test command
type TestFlags struct {
	TestNotifications bool
	TestAPI           bool
	Timeout           string
	ShowDetails       bool
}

// NewTestCommand creates the test command
func NewTestCommand() *cobra.Command {
	var flags TestFlags

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test integrations",
		Long: `Test the integrations statusboard depends on.

Available tests:
- Notification systems (Slack): sends a test message
- Status API: lists status pages and loads the first one in detail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.TestNotifications, "notifications", false, "send a test notification")
	cmd.Flags().BoolVar(&flags.TestAPI, "api", false, "exercise the status API")
	cmd.Flags().StringVar(&flags.Timeout, "timeout", "30s", "test timeout duration")
	cmd.Flags().BoolVar(&flags.ShowDetails, "show-details", false, "print the status page detail rendered by the API test")

	// If no specific flags are provided, test notifications by default
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !flags.TestNotifications && !flags.TestAPI {
			flags.TestNotifications = true
		}
		return nil
	}

	return cmd
}

// runTest performs the requested tests
func runTest(ctx context.Context, out io.Writer, flags TestFlags) error {
	logger := utils.GetGlobalLogger()

	timeout, err := utils.ParseDuration(flags.Timeout)
	if err != nil || timeout <= 0 {
		return fmt.Errorf("invalid timeout duration: %q", flags.Timeout)
	}

	testCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	exec, err := newExecutor("test", OutputFlags{})
	if err != nil {
		return err
	}

	var testsPassed, testsFailed int

	if flags.TestAPI {
		logger.Info("Testing status API...")
		passed, failed := testAPI(testCtx, exec, out, flags.ShowDetails)
		testsPassed += passed
		testsFailed += failed
	}

	if flags.TestNotifications {
		logger.Info("Testing notification systems...")
		passed, failed := testNotifications(testCtx, exec)
		testsPassed += passed
		testsFailed += failed
	}

	logger.Info("=== Test Summary ===")
	logger.Infof("Tests passed: %d", testsPassed)
	logger.Infof("Tests failed: %d", testsFailed)

	if testsFailed > 0 {
		logger.Error("Some tests failed. Please check your configuration and setup.")
		return fmt.Errorf("%d tests failed", testsFailed)
	}

	logger.Info("All tests passed successfully!")
	return nil
}

// testNotifications sends a test message through every configured notifier
func testNotifications(ctx context.Context, exec *executor.Executor) (passed, failed int) {
	logger := utils.GetGlobalLogger()

	manager := exec.Notifier()
	if !manager.HasNotifiers() {
		logger.Warn("No notification systems configured - skipping notification tests")
		return 0, 1
	}

	if err := manager.SendTestMessage(ctx); err != nil {
		logger.WithError(err).Error("❌ Test notification failed")
		return 0, 1
	}

	logger.Infof("✅ Test notification sent to %d notifier(s)", manager.GetNotifierCount())
	return 1, 0
}

// testAPI lists the status pages and renders the first one in detail
func testAPI(ctx context.Context, exec *executor.Executor, out io.Writer, verbose bool) (passed, failed int) {
	logger := utils.GetGlobalLogger()

	pages, err := exec.Service().ListWithStatus(ctx)
	if err != nil {
		logger.WithError(err).Error("❌ Listing status pages failed")
		return 0, 1
	}
	logger.Infof("✅ Listed %d status pages", len(pages))
	passed++

	if len(pages) == 0 {
		return passed, 0
	}

	detailOut := io.Discard
	if verbose {
		detailOut = out
	}
	if err := exec.ShowCompany(ctx, detailOut, pages[0].Name); err != nil {
		logger.WithStatusPage(pages[0].Name).WithError(err).Error("❌ Loading status page detail failed")
		return passed, 1
	}
	logger.WithStatusPage(pages[0].Name).Info("✅ Loaded status page detail")

	return passed + 1, 0
}
