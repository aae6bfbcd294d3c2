package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fhagedorn/stempel/internal/cli/formatter"
	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/service"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the work session timer",
	}

	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerStopCmd(app),
		newTimerStatusCmd(app),
		newTimerWatchCmd(app),
		newTimerResolveCmd(app),
	)

	return cmd
}

func newTimerStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a work session for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Timer.Start(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s  started at %s\n",
				formatter.StateIndicator(formatter.StateRunning),
				formatter.Bold(formatter.ShortClock(entry.Start)))
			return nil
		},
	}
}

func newTimerStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running work session",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Timer.Stop(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Stopped at %s. Worked %s",
				formatter.Bold(formatter.ShortClock(*entry.End)),
				formatter.Bold(formatter.Minutes(entry.WorkedMinutes())))
			if entry.BreakMinutes > 0 {
				fmt.Printf(" with %s of breaks", formatter.Minutes(entry.BreakMinutes))
			}
			fmt.Println()
			return nil
		},
	}
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session and any stale one",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Timer.Status(context.Background())
			if err != nil {
				return err
			}
			now := time.Now().In(app.location()).Format(domain.ClockLayout)
			fmt.Println(formatter.FormatTimerStatus(status.Active, status.Stale, now))
			return nil
		},
	}
}

func newTimerResolveCmd(app *App) *cobra.Command {
	var action string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a session left open on an earlier day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if action == "" {
				if !app.interactive() {
					return fmt.Errorf("--action is required in non-interactive mode (stop_eod or discard)")
				}
				stale, err := app.Timer.FindStale(ctx)
				if err != nil {
					return err
				}
				if stale == nil {
					fmt.Println(formatter.Dim("No stale session to resolve."))
					return nil
				}
				choice, err := runStaleForm(stale)
				if err != nil {
					return err
				}
				action = choice
			}

			entry, err := app.Timer.ResolveStale(ctx, service.StaleAction(action))
			if err != nil {
				return err
			}
			if entry == nil {
				fmt.Println("Stale session discarded.")
				return nil
			}
			fmt.Printf("Stale session closed at %s on %s (worked %s).\n",
				formatter.ShortClock(*entry.End), entry.WorkDate,
				formatter.Minutes(entry.WorkedMinutes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "Resolution: stop_eod or discard")
	return cmd
}
