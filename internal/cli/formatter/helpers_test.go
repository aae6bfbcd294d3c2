package formatter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences for stripping before comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		min  int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{60, "1:00"},
		{485, "8:05"},
		{2400, "40:00"},
		{-90, "-1:30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Minutes(tt.min))
	}
}

func TestSignedMinutes(t *testing.T) {
	assert.Equal(t, "+1:30", stripANSI(SignedMinutes(90)))
	assert.Equal(t, "-0:45", stripANSI(SignedMinutes(-45)))
	assert.Equal(t, "±0:00", stripANSI(SignedMinutes(0)))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, "0:00:00", Seconds(0))
	assert.Equal(t, "0:10:30", Seconds(630))
	assert.Equal(t, "8:59:59", Seconds(8*3600+59*60+59))
	assert.Equal(t, "0:00:00", Seconds(-5))
}

func TestShortClock(t *testing.T) {
	assert.Equal(t, "09:30", ShortClock("09:30:00"))
	assert.Equal(t, "09:30", ShortClock("09:30"))
}

func TestHeaderUppercasesAndUnderlines(t *testing.T) {
	got := stripANSI(Header("overtime"))
	assert.Equal(t, "OVERTIME\n────────", got)
}
