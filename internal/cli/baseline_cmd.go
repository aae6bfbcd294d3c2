package cli

import (
	"context"
	"fmt"

	"github.com/fhagedorn/stempel/internal/cli/formatter"
	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/spf13/cobra"
)

func newBaselineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Show or change the worked-time targets",
	}

	cmd.AddCommand(
		newBaselineShowCmd(app),
		newBaselineSetCmd(app),
	)

	return cmd
}

func newBaselineShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Settings.Get(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatBaseline(b))
			return nil
		},
	}
}

func newBaselineSetCmd(app *App) *cobra.Command {
	var weekly, daily, workdays int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the baseline for future entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			current, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("weekly") {
				current.WeeklyMinutes = weekly
			}
			if cmd.Flags().Changed("daily") {
				current.DailyMinutes = daily
			}
			if cmd.Flags().Changed("workdays") {
				current.WorkdaysPerWeek = workdays
			}

			updated, err := app.Settings.Update(ctx, current)
			if err != nil {
				return err
			}
			fmt.Println("Baseline updated. Existing entries keep their snapshots.")
			fmt.Print(formatter.FormatBaseline(updated))
			return nil
		},
	}

	cmd.Flags().IntVar(&weekly, "weekly", domain.DefaultBaselineWeeklyMinutes, "Weekly target minutes")
	cmd.Flags().IntVar(&daily, "daily", domain.DefaultBaselineDailyMinutes, "Daily target minutes")
	cmd.Flags().IntVar(&workdays, "workdays", domain.DefaultWorkdaysPerWeek, "Workdays per week (1..7)")

	return cmd
}
