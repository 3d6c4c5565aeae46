package delivery

import (
	"errors"
	"fmt"

	"cementops/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for rejected status transitions.
// Use errors.Is against it; the concrete error is an InvalidTransitionError
// carrying the from/to pair.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status change that the transition table
// does not allow, carrying both endpoints for precise rendering.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a delivery mission.
// It implements a state machine with an explicit transition table.
//
// State transitions:
//
//	Pending ──> Scheduled ──> InProgress ──> Delivered
//	   │            │              │
//	   └────────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal; no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created mission.
	Pending

	// Scheduled indicates the mission is confirmed for its date and time.
	Scheduled

	// InProgress indicates the truck is out delivering. Requires a truck.
	InProgress

	// Delivered indicates the mission completed successfully. Terminal.
	Delivered

	// Cancelled indicates the mission was abandoned; its orders return to the
	// unassigned pool. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Scheduled:  "Scheduled",
		InProgress: "InProgress",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Scheduled:  "Scheduled",
		InProgress: "InProgress",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// allowedTransitions is the explicit transition table. A requested status
// change is valid only if the target appears in the source's entry.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Scheduled, Cancelled},
		Scheduled:  {InProgress, Cancelled},
		InProgress: {Delivered, Cancelled},
		Delivered:  {},
		Cancelled:  {},
	}
}

// StatusFromString parses the persisted string form of a status.
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions leave this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether a delivery in this status still owns its orders.
// Only Cancelled releases orders back to the unassigned pool.
func (s Status) IsActive() bool {
	return s != Cancelled && s != Unknown
}

// CanTransitionTo reports whether the transition table allows moving to the
// target status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the requested transition against the table and
// returns the new status, or an InvalidTransitionError carrying both
// endpoints when it is not allowed.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}
