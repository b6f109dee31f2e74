// Package timecode formats playback positions for labels.
package timecode

import (
	"fmt"
	"math"
)

// Format renders seconds as H:MM:SS when at least an hour, otherwise M:SS.
// Non-finite or negative input renders as 0:00.
func Format(totalSeconds float64) string {
	if math.IsNaN(totalSeconds) || math.IsInf(totalSeconds, 0) || totalSeconds < 0 {
		totalSeconds = 0
	}
	whole := int64(math.Floor(totalSeconds))
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	seconds := whole % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Percent returns how far current is through duration, capped at 100.
func Percent(current, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return math.Min(100, current/duration*100)
}
