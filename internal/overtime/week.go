// Package overtime aggregates closed work entries into weekly and total
// overtime figures against per-entry baseline snapshots. It is pure
// computation: the caller supplies the entries, the holiday set, and the
// reference day, and no storage is touched.
package overtime

import "time"

// WeekStart returns the Monday of the week containing d, at midnight in
// d's location. Weeks are Monday-based throughout the accounting engine.
func WeekStart(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}

// DistributeBaseline spreads a weekly baseline over the first `workdays`
// weekdays (Monday-indexed) as per-day target minutes. Each configured
// workday gets floor(baseline/workdays); the division remainder lands
// entirely on the last configured workday, so the targets always sum to
// the baseline. Non-configured weekdays get zero. A workdays value
// outside 1..7 is clamped.
func DistributeBaseline(weekBaseline, workdays int) [7]int {
	if weekBaseline < 0 {
		weekBaseline = 0
	}
	if workdays < 1 {
		workdays = 1
	}
	if workdays > 7 {
		workdays = 7
	}

	base := weekBaseline / workdays
	remainder := weekBaseline - base*workdays

	var targets [7]int
	for i := 0; i < workdays; i++ {
		targets[i] = base
	}
	targets[workdays-1] += remainder
	return targets
}
