package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/fhagedorn/stempel/internal/cli/formatter"
	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/service"
)

// stempelHuhTheme styles huh forms with the formatter palette.
func stempelHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateDate accepts a YYYY-MM-DD date string, or empty (defaulted).
func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateClock accepts an HH:MM or HH:MM:SS time of day.
func validateClock(s string) error {
	if _, err := domain.NormalizeClock(s); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// runEntryForm collects a manual entry interactively.
func runEntryForm(loc *time.Location) (service.EntryCreate, error) {
	date := time.Now().In(loc).Format(domain.DateLayout)
	var start, end, breakStr, note string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("2026-03-02").
				Value(&date).
				Validate(validateDate),
			huh.NewInput().
				Title("Start (HH:MM)").
				Placeholder("09:00").
				Value(&start).
				Validate(validateClock),
			huh.NewInput().
				Title("End (HH:MM)").
				Placeholder("17:30").
				Value(&end).
				Validate(validateClock),
			huh.NewInput().
				Title("Break minutes").
				Placeholder("30").
				Value(&breakStr).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Note (optional)").
				Value(&note),
		),
	).WithTheme(stempelHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return service.EntryCreate{}, err
	}

	in := service.EntryCreate{WorkDate: date, Start: start, End: end}
	if breakStr != "" {
		in.BreakMinutes, _ = strconv.Atoi(breakStr)
	}
	if note != "" {
		in.Note = &note
	}
	return in, nil
}

// runStaleForm asks how to resolve the given stale session.
func runStaleForm(stale *domain.WorkEntry) (string, error) {
	var choice string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Session from %s (started %s) was never stopped", stale.WorkDate, formatter.ShortClock(stale.Start))).
				Options(
					huh.NewOption("Close it at end of day (23:59:59)", string(service.StaleStopEOD)),
					huh.NewOption("Discard it", string(service.StaleDiscard)),
				).
				Value(&choice),
		),
	).WithTheme(stempelHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}
