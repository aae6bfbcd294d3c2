package cli

import (
	"time"

	"github.com/fhagedorn/stempel/internal/holiday"
	"github.com/fhagedorn/stempel/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Timer    service.TimerService
	Entries  service.EntryService
	Settings service.SettingsService
	Users    service.UserService
	Stats    service.StatsService
	Holidays holiday.Lister

	// Location is the wall-clock timezone, for elapsed-time display.
	Location *time.Location

	// IsInteractive gates prompt-based surfaces (forms, live view).
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

// NewRootCmd creates the top-level "stempel" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "stempel",
		Short:         "Worked-time tracking and overtime accounting",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newTimerCmd(app),
		newBreakCmd(app),
		newEntryCmd(app),
		newStatsCmd(app),
		newHolidaysCmd(app),
		newBaselineCmd(app),
		newUserCmd(app),
	)

	return root
}
