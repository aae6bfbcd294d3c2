package formatter

import (
	"fmt"
	"strings"

	"github.com/fhagedorn/stempel/internal/domain"
)

// FormatTimerStatus renders the live session view: the running entry (or
// idle notice) plus a warning block when a stale session needs resolving.
// nowClock is the current "HH:MM:SS" wall clock, used for elapsed time.
func FormatTimerStatus(active, stale *domain.WorkEntry, nowClock string) string {
	var b strings.Builder

	b.WriteString(formatActive(active, nowClock))

	if stale != nil {
		b.WriteString("\n\n")
		b.WriteString(StateIndicator(StateStale))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("A session from %s (started %s) was never stopped.\n", stale.WorkDate, ShortClock(stale.Start)))
		b.WriteString(Dim("Run `stempel timer resolve --action stop_eod` or `--action discard`."))
	}

	return b.String()
}

func formatActive(active *domain.WorkEntry, nowClock string) string {
	if active == nil {
		return StateIndicator(StateIdle) + "\n" + Dim("No session running. Start one with `stempel timer start`.")
	}

	state := StateRunning
	if active.IsOnBreak {
		state = StateOnBreak
	}

	var b strings.Builder
	b.WriteString(StateIndicator(state))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Started   %s\n", Bold(ShortClock(active.Start))))

	elapsed := domain.ClockSeconds(nowClock) - domain.ClockSeconds(active.Start)
	onBreakNow := 0
	if active.IsOnBreak && active.BreakStartedAt != nil {
		onBreakNow = domain.ClockSeconds(nowClock) - domain.ClockSeconds(*active.BreakStartedAt)
		if onBreakNow < 0 {
			onBreakNow = 0
		}
	}
	worked := elapsed - active.BreakSeconds - onBreakNow
	if worked < 0 {
		worked = 0
	}
	b.WriteString(fmt.Sprintf("Worked    %s\n", Bold(Seconds(worked))))

	breaks := active.BreakSeconds + onBreakNow
	if breaks > 0 || active.IsOnBreak {
		b.WriteString(fmt.Sprintf("Breaks    %s\n", Seconds(breaks)))
	}
	if active.IsOnBreak && active.BreakStartedAt != nil {
		b.WriteString(fmt.Sprintf("On break  since %s\n", ShortClock(*active.BreakStartedAt)))
	}
	if active.Note != nil && *active.Note != "" {
		b.WriteString(fmt.Sprintf("Note      %s\n", Dim(*active.Note)))
	}

	return strings.TrimRight(b.String(), "\n")
}
