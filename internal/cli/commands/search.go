package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	var output OutputFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search monitored services by name",
		Long: `Search the status pages known to the API. At most display.search_limit
results are shown; an empty query returns nothing.`,
		Example: `  statusboard search pay
  statusboard search "česká spořitelna" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := newExecutor("search", output)
			if err != nil {
				return err
			}

			return exec.Search(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	addOutputFlags(cmd, &output)

	return cmd
}
