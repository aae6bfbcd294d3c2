package formatter

import (
	"fmt"
	"strings"

	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/overtime"
)

// FormatReport renders the overtime report: one table row per week plus
// an aggregate summary block.
func FormatReport(r *overtime.Report) string {
	if r.WeeksCount == 0 {
		return Dim("No closed entries yet. Overtime accounting starts after the first full day.")
	}

	headers := []string{"WEEK", "WORKED", "EXPECTED", "CREDIT", "OVERTIME"}
	rows := make([][]string, 0, len(r.Weeks))
	for _, w := range r.Weeks {
		credit := Dim("—")
		if w.Credit > 0 {
			credit = StyleBlue.Render(Minutes(w.Credit))
		}
		rows = append(rows, []string{
			w.WeekStart.Format(domain.DateLayout),
			Minutes(w.Worked),
			Minutes(w.Expected),
			credit,
			SignedMinutes(w.Overtime),
		})
	}

	var b strings.Builder
	b.WriteString(Header("overtime"))
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total worked  %s over %d days in %d weeks\n",
		Bold(Minutes(r.TotalWorkedMinutes)), r.DaysCount, r.WeeksCount))
	b.WriteString(fmt.Sprintf("Balance       %s\n", SignedMinutes(r.OvertimeTotalMinutes)))
	return b.String()
}

// FormatBaseline renders the user's current baseline settings.
func FormatBaseline(b domain.Baseline) string {
	rows := [][]string{
		{"Weekly target", Minutes(b.WeeklyMinutes), fmt.Sprintf("%d min", b.WeeklyMinutes)},
		{"Daily target", Minutes(b.DailyMinutes), fmt.Sprintf("%d min", b.DailyMinutes)},
		{"Workdays per week", fmt.Sprintf("%d", b.WorkdaysPerWeek), ""},
	}
	return RenderTable([]string{"SETTING", "VALUE", ""}, rows)
}
