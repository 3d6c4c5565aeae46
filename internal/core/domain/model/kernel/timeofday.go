package kernel

import (
	"time"

	"cementops/internal/pkg/errs"
)

// Time-of-day values travel as plain strings ("15:04" or "15:04:05"),
// matching the wire format of requested and scheduled delivery times.
// An empty string means no time was specified.
const (
	timeOfDayLayout        = "15:04"
	timeOfDaySecondsLayout = "15:04:05"
)

// ValidateTimeOfDay checks that s is empty or a valid time of day in
// "HH:MM" or "HH:MM:SS" form.
func ValidateTimeOfDay(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(timeOfDayLayout, s); err == nil {
		return nil
	}
	if _, err := time.Parse(timeOfDaySecondsLayout, s); err == nil {
		return nil
	}
	return errs.NewValueIsInvalidError("time of day")
}

// TimeOfDayAfterOrEqual reports whether time-of-day a is at or after b.
// Both values must already be validated; lexicographic comparison is exact
// for zero-padded 24-hour times.
func TimeOfDayAfterOrEqual(a, b string) bool {
	return a >= b
}
