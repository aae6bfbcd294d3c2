package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}

	return boxStyle.Render(content)
}

// Minutes renders a minute count as "H:MM" (e.g. 485 -> "8:05").
func Minutes(min int) string {
	neg := min < 0
	if neg {
		min = -min
	}
	s := fmt.Sprintf("%d:%02d", min/60, min%60)
	if neg {
		return "-" + s
	}
	return s
}

// SignedMinutes renders a minute delta with an explicit sign, colored
// green for surplus, red for deficit, dim for exactly zero.
func SignedMinutes(min int) string {
	switch {
	case min > 0:
		return StyleGreen.Render("+" + Minutes(min))
	case min < 0:
		return StyleRed.Render(Minutes(min))
	default:
		return StyleDim.Render("±0:00")
	}
}

// ShortClock trims "HH:MM:SS" to "HH:MM" for display.
func ShortClock(clock string) string {
	if len(clock) >= 5 {
		return clock[:5]
	}
	return clock
}

// Seconds renders a second count as "H:MM:SS".
func Seconds(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
}
