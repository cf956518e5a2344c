package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacphi/statusboard/pkg/timefmt"
)

// DurationFlags contains flags for the duration command
type DurationFlags struct {
	Ago      bool
	Language string
}

// NewDurationCommand creates the duration command
func NewDurationCommand() *cobra.Command {
	var flags DurationFlags

	cmd := &cobra.Command{
		Use:   "duration <start> [end]",
		Short: "Format the time between two timestamps",
		Long: `Format the time between two ISO-8601 timestamps the way incident durations
are shown. Without an end, the current time is used. With --ago the result
is phrased as "time ago", as in the last check column.`,
		Example: `  statusboard duration 2024-01-05T09:03:00Z 2024-01-05T10:30:00Z
  statusboard duration 2024-01-05T09:03:00+01:00 --ago
  statusboard duration "2024-01-05 09:03" -l en`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDuration(cmd.OutOrStdout(), args, flags, time.Now())
		},
	}

	cmd.Flags().BoolVar(&flags.Ago, "ago", false, "render as time ago instead of a duration")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", "cs", "language (cs, en)")

	return cmd
}

// runDuration prints the formatted span between args[0] and args[1] (or now)
func runDuration(out io.Writer, args []string, flags DurationFlags, now time.Time) error {
	lang, err := timefmt.ParseLanguage(flags.Language)
	if err != nil {
		return err
	}
	formatter := timefmt.New(lang)

	var end string
	if len(args) == 2 {
		end = args[1]
	}

	var text string
	if flags.Ago {
		text, err = formatter.TimeAgoBetween(args[0], end, now)
	} else {
		text, err = formatter.DurationBetween(args[0], end, now)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, text)
	return err
}
