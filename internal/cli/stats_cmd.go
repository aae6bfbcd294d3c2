package cli

import (
	"context"
	"fmt"

	"github.com/fhagedorn/stempel/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show weekly and total overtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Stats.Overview(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatReport(report))
			return nil
		},
	}
}
