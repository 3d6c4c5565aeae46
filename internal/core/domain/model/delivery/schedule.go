package delivery

import (
	"time"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/errs"
	"cementops/internal/pkg/guard"
)

// ErrScheduleIsNotConstructed is returned when attempting to use an
// improperly initialized Schedule.
var ErrScheduleIsNotConstructed = errs.NewValueIsRequiredError(
	"schedule must be created via NewSchedule constructor")

// ErrScheduleDateIsRequired is returned when the scheduled date is missing.
var ErrScheduleDateIsRequired = errs.NewValueIsRequiredError("scheduled date")

const scheduleDateLayout = "2006-01-02"

// Schedule is a value object pairing the scheduled calendar date with an
// optional time of day ("15:04" form, empty when unspecified). Schedules are
// immutable; rescheduling a delivery replaces the value.
//
// Whether a schedule lies in the past is a property of the moment it is
// checked, so the comparison lives in InPast and takes the reference time
// explicitly rather than reading a clock.
type Schedule struct { //nolint:recvcheck //using for validation
	date      time.Time
	timeOfDay string
	guard     guard.ConstructorGuard
}

// NewSchedule creates a Schedule from a calendar date and an optional time of
// day. The date must be non-zero; the time of day must be empty or valid
// "HH:MM"/"HH:MM:SS".
func NewSchedule(date time.Time, timeOfDay string) (Schedule, error) {
	if date.IsZero() {
		return Schedule{}, ErrScheduleDateIsRequired
	}
	if err := kernel.ValidateTimeOfDay(timeOfDay); err != nil {
		return Schedule{}, err
	}

	return Schedule{
		date:      time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		timeOfDay: timeOfDay,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Schedule was properly constructed.
func (s Schedule) Validate() error {
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

// Date returns the scheduled calendar date (midnight UTC).
func (s Schedule) Date() time.Time {
	return s.date
}

// TimeOfDay returns the optional scheduled time of day ("" if unspecified).
func (s Schedule) TimeOfDay() string {
	return s.timeOfDay
}

// DateString returns the date in "2006-01-02" form.
func (s Schedule) DateString() string {
	return s.date.Format(scheduleDateLayout)
}

// InPast reports whether the schedule lies strictly in the past relative to
// now. A date before today is past; today's date with a time of day earlier
// than the current time is past; today without a time of day is not.
func (s Schedule) InPast(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s.date.Before(today) {
		return true
	}
	if s.date.After(today) {
		return false
	}
	if s.timeOfDay == "" {
		return false
	}
	return !kernel.TimeOfDayAfterOrEqual(s.timeOfDay, now.Format("15:04"))
}

// IsEqual compares two schedules by date and time of day.
func (s Schedule) IsEqual(other Schedule) bool {
	return s.date.Equal(other.date) && s.timeOfDay == other.timeOfDay
}
