package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var output OutputFlags

	cmd := &cobra.Command{
		Use:   "status <name>",
		Short: "Show the current status and incident history of one service",
		Long: `Show the detail of one status page: its current status, when it was last
checked and its incidents, newest first. Ongoing incidents are measured up
to now and marked as such.

When the name is not known, similarly named services are suggested.`,
		Example: `  statusboard status payu
  statusboard status csob -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := newExecutor("status", output)
			if err != nil {
				return err
			}

			return exec.ShowCompany(cmd.Context(), cmd.OutOrStdout(), strings.TrimSpace(args[0]))
		},
	}

	addOutputFlags(cmd, &output)

	return cmd
}
