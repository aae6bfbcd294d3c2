package formatter

import (
	"github.com/fhagedorn/stempel/internal/domain"
)

// FormatEntriesTable renders a range of entries as an aligned table,
// one row per entry in store order (date, then start time).
func FormatEntriesTable(entries []*domain.WorkEntry) string {
	if len(entries) == 0 {
		return Dim("No entries in this range.")
	}

	headers := []string{"ID", "DATE", "START", "END", "BREAK", "WORKED", "NOTE"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		end := StyleGreen.Render("open")
		worked := Dim("—")
		if e.End != nil {
			end = ShortClock(*e.End)
			worked = Minutes(e.WorkedMinutes())
		}
		note := ""
		if e.Note != nil {
			note = Dim(*e.Note)
		}
		rows = append(rows, []string{
			e.ID,
			e.WorkDate,
			ShortClock(e.Start),
			end,
			Minutes(e.BreakMinutes),
			worked,
			note,
		})
	}
	return RenderTable(headers, rows)
}
