package cli

import (
	"context"
	"fmt"

	"github.com/fhagedorn/stempel/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Pause and resume the running session",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start a break",
			RunE: func(cmd *cobra.Command, args []string) error {
				entry, err := app.Timer.StartBreak(context.Background())
				if err != nil {
					return err
				}
				fmt.Printf("%s  since %s\n",
					formatter.StateIndicator(formatter.StateOnBreak),
					formatter.Bold(formatter.ShortClock(*entry.BreakStartedAt)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "End the break and resume working",
			RunE: func(cmd *cobra.Command, args []string) error {
				entry, err := app.Timer.StopBreak(context.Background())
				if err != nil {
					return err
				}
				fmt.Printf("%s  breaks total %s\n",
					formatter.StateIndicator(formatter.StateRunning),
					formatter.Seconds(entry.BreakSeconds))
				return nil
			},
		},
	)

	return cmd
}
