package order

import (
	"fmt"

	"cementops/internal/pkg/errs"
)

// Status represents the lifecycle state of a customer order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Validated ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Orders enter the system Pending;
// validation by the intake desk moves them to Validated. Both Pending and
// Validated orders belong to the schedulable backlog.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first registered.
	Pending

	// Validated indicates the order was confirmed by the intake desk and is
	// ready for scheduling.
	Validated

	// Cancelled indicates the order was withdrawn. Terminal.
	Cancelled

	// Delivered indicates the order reached the client. Terminal, set only by
	// the delivery lifecycle.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Validated: "Validated",
		Cancelled: "Cancelled",
		Delivered: "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Validated: "Validated",
		Cancelled: "Cancelled",
		Delivered: "Delivered",
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
		fmt.Errorf("%q is not a valid order status", s))
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

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsSchedulable reports whether orders in this status belong to the backlog
// eligible for delivery assignment.
func (s Status) IsSchedulable() bool {
	return s == Pending || s == Validated
}

// MarkValidated transitions the status to Validated.
//
// Valid transitions:
//   - Pending -> Validated
func (s Status) MarkValidated() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to validate", s.String()))
	}
	return Validated, nil
}

// MarkDelivered transitions the status to Delivered.
//
// Valid transitions:
//   - Pending -> Delivered
//   - Validated -> Delivered
//
// Terminal statuses reject the transition.
func (s Status) MarkDelivered() (Status, error) {
	if !s.IsSchedulable() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to deliver", s.String()))
	}
	return Delivered, nil
}

// MarkCancelled transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Validated -> Cancelled
func (s Status) MarkCancelled() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()))
	}
	return Cancelled, nil
}
