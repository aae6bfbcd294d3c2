// Package holiday computes German public holidays for the overtime
// engine's credit step. Hamburg observes the nationwide holidays plus
// Reformation Day (since 2018); the movable feasts are derived from the
// Easter date, which Gauss's algorithm yields without any table.
package holiday

import (
	"fmt"
	"sort"
	"time"

	"github.com/fhagedorn/stempel/internal/domain"
)

// Provider yields the public holidays inside a date range. Dates are
// YYYY-MM-DD strings, the range is inclusive on both ends.
type Provider interface {
	HolidaysInRange(from, to string) (map[string]struct{}, error)
}

// Holiday is one public holiday with its display name.
type Holiday struct {
	Date string // YYYY-MM-DD
	Name string
}

// Lister enumerates a year's holidays chronologically, for display.
type Lister interface {
	HolidaysForYear(year int) []Holiday
}

// HamburgProvider computes the public holidays of Hamburg, Germany.
type HamburgProvider struct{}

func NewHamburgProvider() *HamburgProvider {
	return &HamburgProvider{}
}

// HolidaysInRange returns every Hamburg public holiday within
// [from..to] keyed by its YYYY-MM-DD date.
func (p *HamburgProvider) HolidaysInRange(from, to string) (map[string]struct{}, error) {
	start, err := domain.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("holiday range start: %w", err)
	}
	end, err := domain.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("holiday range end: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("holiday range start %s after end %s: %w", from, to, domain.ErrInvalidInput)
	}

	out := make(map[string]struct{})
	for year := start.Year(); year <= end.Year(); year++ {
		for _, h := range hamburgHolidays(year) {
			if h.Date >= from && h.Date <= to {
				out[h.Date] = struct{}{}
			}
		}
	}
	return out, nil
}

// HolidaysForYear returns the year's holidays in chronological order.
func (p *HamburgProvider) HolidaysForYear(year int) []Holiday {
	days := hamburgHolidays(year)
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// hamburgHolidays lists the public holidays Hamburg observes in the
// given year. Reformation Day became a public holiday there in 2018.
func hamburgHolidays(year int) []Holiday {
	easter := easterSunday(year)

	days := []Holiday{
		{ymd(date(year, time.January, 1)), "Neujahr"},
		{ymd(easter.AddDate(0, 0, -2)), "Karfreitag"},
		{ymd(easter.AddDate(0, 0, 1)), "Ostermontag"},
		{ymd(date(year, time.May, 1)), "Tag der Arbeit"},
		{ymd(easter.AddDate(0, 0, 39)), "Christi Himmelfahrt"},
		{ymd(easter.AddDate(0, 0, 50)), "Pfingstmontag"},
		{ymd(date(year, time.October, 3)), "Tag der Deutschen Einheit"},
		{ymd(date(year, time.December, 25)), "1. Weihnachtstag"},
		{ymd(date(year, time.December, 26)), "2. Weihnachtstag"},
	}
	if year >= 2018 {
		days = append(days, Holiday{ymd(date(year, time.October, 31)), "Reformationstag"})
	}
	return days
}

func ymd(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// easterSunday returns the Gregorian Easter Sunday of the given year,
// using Gauss's Easter algorithm in the anonymous-Gregorian form.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
