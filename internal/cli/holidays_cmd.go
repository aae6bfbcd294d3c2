package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fhagedorn/stempel/internal/cli/formatter"
	"github.com/fhagedorn/stempel/internal/domain"
)

func newHolidaysCmd(app *App) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the public holidays credited by the overtime report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().In(app.location()).Year()
			}

			days := app.Holidays.HolidaysForYear(year)

			rows := make([][]string, 0, len(days))
			for _, h := range days {
				d, err := domain.ParseDate(h.Date)
				if err != nil {
					return err
				}
				rows = append(rows, []string{h.Date, d.Weekday().String(), h.Name})
			}

			fmt.Println(formatter.Header(fmt.Sprintf("holidays %d", year)))
			fmt.Print(formatter.RenderTable([]string{"DATE", "DAY", "NAME"}, rows))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Calendar year (default current)")
	return cmd
}
