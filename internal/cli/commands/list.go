package commands

import (
	"github.com/spf13/cobra"

	"github.com/pacphi/statusboard/pkg/utils"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	var output OutputFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all monitored services with their current status",
		Long: `List every status page known to the API together with its current status
and how long ago it was last checked.

A service whose status cannot be determined is shown as NEZNÁMÝ.`,
		Example: `  statusboard list
  statusboard list -o json
  statusboard list --language en`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := newExecutor("list", output)
			if err != nil {
				return err
			}

			pages, err := exec.ListStatuses(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			utils.GetGlobalLogger().Debugf("Listed %d status pages", len(pages))
			return nil
		},
	}

	addOutputFlags(cmd, &output)

	return cmd
}
