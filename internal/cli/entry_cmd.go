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

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage work entries directly",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryEditCmd(app),
		newEntryRemoveCmd(app),
		newEntryListCmd(app),
	)

	return cmd
}

func newEntryAddCmd(app *App) *cobra.Command {
	var date, start, end, note string
	var breakMin int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a closed entry manually",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without flags, fall back to the interactive form.
			if start == "" && end == "" {
				if !app.interactive() {
					return fmt.Errorf("--start and --end are required in non-interactive mode")
				}
				in, err := runEntryForm(app.location())
				if err != nil {
					return err
				}
				date, start, end = in.WorkDate, in.Start, in.End
				breakMin = in.BreakMinutes
				if in.Note != nil {
					note = *in.Note
				}
			}
			if date == "" {
				date = time.Now().In(app.location()).Format(domain.DateLayout)
			}

			in := service.EntryCreate{
				WorkDate:     date,
				Start:        start,
				End:          end,
				BreakMinutes: breakMin,
			}
			if note != "" {
				in.Note = &note
			}

			entry, err := app.Entries.Create(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Added entry %s: %s %s–%s (worked %s)\n",
				entry.ID, entry.WorkDate,
				formatter.ShortClock(entry.Start), formatter.ShortClock(*entry.End),
				formatter.Minutes(entry.WorkedMinutes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Work date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().IntVar(&breakMin, "break", 0, "Break minutes")
	cmd.Flags().StringVar(&note, "note", "", "Entry note")

	return cmd
}

func newEntryEditCmd(app *App) *cobra.Command {
	var date, start, end, note string
	var breakMin int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a closed entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the caller set become part of the patch.
			var patch domain.EntryPatch
			if cmd.Flags().Changed("date") {
				patch.WorkDate = &date
			}
			if cmd.Flags().Changed("start") {
				patch.Start = &start
			}
			if cmd.Flags().Changed("end") {
				patch.End = &end
			}
			if cmd.Flags().Changed("break") {
				patch.BreakMinutes = &breakMin
			}
			if cmd.Flags().Changed("note") {
				patch.Note = &note
			}

			entry, err := app.Entries.Update(context.Background(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated entry %s: %s %s–%s (worked %s)\n",
				entry.ID, entry.WorkDate,
				formatter.ShortClock(entry.Start), formatter.ShortClock(*entry.End),
				formatter.Minutes(entry.WorkedMinutes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Work date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().IntVar(&breakMin, "break", 0, "Break minutes")
	cmd.Flags().StringVar(&note, "note", "", "Entry note")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Entries.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted entry %s\n", args[0])
			return nil
		},
	}
}

func newEntryListCmd(app *App) *cobra.Command {
	var from, to string
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().In(app.location())
			if to == "" {
				to = now.Format(domain.DateLayout)
			}
			if from == "" {
				from = now.AddDate(0, 0, -days+1).Format(domain.DateLayout)
			}

			entries, err := app.Entries.ListRange(context.Background(), from, to)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatEntriesTable(entries))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", 14, "Days back when --from is not given")

	return cmd
}
