package commands

import (
	"github.com/spf13/cobra"

	"github.com/pacphi/statusboard/internal/tui"
)

// NewTUICommand creates the tui command
func NewTUICommand() *cobra.Command {
	var output OutputFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive status dashboard",
		Long: `Start the interactive terminal dashboard.

The dashboard lists every service with its status. Enter opens the incident
history of the selected service, / searches, ? shows help and q quits.
"Time ago" values keep counting every second; data is refreshed every
behavior.refresh_interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := newExecutor("tui", output)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), exec.GetConfig(), exec.Service())
		},
	}

	cmd.Flags().StringVarP(&output.Language, "language", "l", "", "language for durations and labels (cs, en); default from config")

	return cmd
}
