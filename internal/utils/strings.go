package utils

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\p{Cc}\p{Cf}\p{Co}\p{Cs}]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Truncate truncates a string to the specified length and adds ellipsis if needed
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return "..."
	}
	return string(runes[:maxLength-3]) + "..."
}

// SanitizeString replaces control characters with spaces and collapses whitespace
func SanitizeString(s string) string {
	result := controlChars.ReplaceAllString(s, " ")
	result = whitespace.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// FormatDistance renders meters the way they are spoken to the driver:
// whole meters below one kilometer, one decimal kilometer above.
func FormatDistance(meters float64) string {
	if meters < 0 {
		meters = 0
	}
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// MetersPerSecondTo converts a speed to the driver's units ("kmh" or "mph")
func MetersPerSecondTo(units string, mps float64) float64 {
	if units == "mph" {
		return mps * 2.2369362920544
	}
	return mps * 3.6
}
