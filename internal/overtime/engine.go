package overtime

import (
	"fmt"
	"sort"
	"time"

	"github.com/fhagedorn/stempel/internal/domain"
)

// WeekFigures is the accounting result for one calendar week.
type WeekFigures struct {
	WeekStart time.Time // Monday
	Worked    int       // minutes actually worked
	Expected  int       // minutes targeted by the baseline snapshot
	Credit    int       // holiday minutes credited on configured workdays
	Overtime  int       // (Worked + Credit) − Expected, signed
}

// Report is the all-time aggregate over every week that has entries.
type Report struct {
	Weeks []WeekFigures // chronological

	TotalWorkedMinutes   int
	OvertimeTotalMinutes int
	WeeksCount           int
	DaysCount            int
}

// weekGroup collects a week's closed entries before figures are computed.
type weekGroup struct {
	start   time.Time
	entries []*domain.WorkEntry
}

// Compute aggregates the user's closed entries into per-week and total
// overtime figures. holidays is keyed by YYYY-MM-DD date; today anchors
// the partial-week rule: the week containing yesterday is truncated at
// yesterday (worked, expected, and credit alike), fully elapsed weeks
// count in full, and a week the cutoff has not reached contributes
// nothing. Open entries are ignored. Weeks without entries do not appear.
func Compute(entries []*domain.WorkEntry, holidays map[string]struct{}, today time.Time) (Report, error) {
	groups := make(map[string]*weekGroup)

	for _, e := range entries {
		if e.End == nil {
			continue
		}
		day, err := time.ParseInLocation(domain.DateLayout, e.WorkDate, today.Location())
		if err != nil {
			return Report{}, fmt.Errorf("entry %s: bad work date %q: %w", e.ID, e.WorkDate, err)
		}
		ws := WeekStart(day)
		key := ws.Format(domain.DateLayout)
		g, ok := groups[key]
		if !ok {
			g = &weekGroup{start: ws}
			groups[key] = g
		}
		g.entries = append(g.entries, e)
	}

	yesterday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, -1)
	cutoff := yesterday.Format(domain.DateLayout)

	var report Report
	days := make(map[string]struct{})

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		g := groups[key]
		if yesterday.Before(g.start) {
			// The cutoff has not reached this week yet; when today is
			// Monday the current week contributes nothing.
			continue
		}

		fig := computeWeek(g, holidays, cutoff, days)
		report.Weeks = append(report.Weeks, fig)
		report.TotalWorkedMinutes += fig.Worked
		report.OvertimeTotalMinutes += fig.Overtime
	}

	report.WeeksCount = len(report.Weeks)
	report.DaysCount = len(days)
	return report, nil
}

// computeWeek produces one week's figures, counting only days up to the
// cutoff date (a fully elapsed week has every day before it). The
// baseline snapshot is taken from the chronologically earliest entry in
// the week, date first, then start time — the tie-break when a baseline
// changed mid-week.
func computeWeek(g *weekGroup, holidays map[string]struct{}, cutoff string, days map[string]struct{}) WeekFigures {
	snapshot := g.entries[0]
	for _, e := range g.entries[1:] {
		if e.WorkDate < snapshot.WorkDate ||
			(e.WorkDate == snapshot.WorkDate && e.Start < snapshot.Start) {
			snapshot = e
		}
	}

	workdays := snapshot.WorkdaysPerWeek
	if workdays < 1 {
		workdays = 1
	}
	if workdays > 7 {
		workdays = 7
	}
	targets := DistributeBaseline(snapshot.BaselineWeeklyMinutes, workdays)

	fig := WeekFigures{WeekStart: g.start}

	for _, e := range g.entries {
		if e.WorkDate > cutoff {
			continue
		}
		fig.Worked += e.WorkedMinutes()
		days[e.WorkDate] = struct{}{}
	}

	for i := 0; i < 7; i++ {
		date := g.start.AddDate(0, 0, i).Format(domain.DateLayout)
		if date > cutoff {
			break
		}
		fig.Expected += targets[i]
		if i < workdays {
			if _, ok := holidays[date]; ok {
				// A holiday on a day the user was expected to work
				// counts as if the target was met.
				fig.Credit += targets[i]
			}
		}
	}

	fig.Overtime = fig.Worked + fig.Credit - fig.Expected
	return fig
}
