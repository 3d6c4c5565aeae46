package services

import (
	"errors"
	"fmt"
	"strings"

	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/order"
	"cementops/internal/core/domain/model/truck"
)

// ErrEmptySelection is returned when a delivery is created without any orders.
var ErrEmptySelection = errors.New("order selection is empty")

// ErrAlreadyAssigned is the sentinel wrapped by AlreadyAssignedError.
var ErrAlreadyAssigned = errors.New("order already assigned to an active delivery")

// ErrCapacityExceeded is the sentinel wrapped by CapacityExceededError.
var ErrCapacityExceeded = errors.New("truck capacity exceeded")

// AssignmentRef points at the active delivery currently holding an order.
type AssignmentRef struct {
	DeliveryID kernel.UUID
	Status     delivery.Status
	Schedule   delivery.Schedule
}

// Conflict describes one order that is already bound to another active delivery.
// Client and product names are carried so the caller can render a precise message
// without further lookups.
type Conflict struct {
	OrderID     kernel.UUID
	ClientName  string
	ProductName string
	Quantity    kernel.Tonnage
	DeliveryID  kernel.UUID
	Status      delivery.Status
	Schedule    delivery.Schedule
}

// AlreadyAssignedError reports every conflicting order in a candidate set.
// All conflicts are collected and reported together rather than failing on the first.
type AlreadyAssignedError struct {
	Conflicts []Conflict
}

func (e *AlreadyAssignedError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s (%s, %sT) held by delivery %s [%s] on %s",
			c.ClientName, c.ProductName, c.Quantity, c.DeliveryID, c.Status, c.Schedule.DateString()))
	}

	return fmt.Sprintf("%s: %s", ErrAlreadyAssigned, strings.Join(parts, "; "))
}

func (e *AlreadyAssignedError) Unwrap() error {
	return ErrAlreadyAssigned
}

// CapacityExceededError reports by how much a candidate order set overflows the truck.
type CapacityExceededError struct {
	Used     kernel.Tonnage
	Capacity kernel.Tonnage
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: selected %sT, capacity %sT", ErrCapacityExceeded, e.Used, e.Capacity)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// AssignmentValidator is a domain service that checks a candidate (order set, truck)
// pair before a delivery is created or updated.
//
// Key responsibilities:
//   - Rejecting empty order selections on creation
//   - Detecting orders already bound to a different active delivery
//   - Enforcing the truck capacity constraint with exact decimal arithmetic
//
// Business rules:
//   - An order may belong to at most one non-cancelled delivery at a time
//   - The delivery being edited is excluded from its own conflict check
//   - Capacity comparison is strict: a load exactly equal to capacity is accepted
//   - Every conflict in the set is reported, not just the first
//
// The validator is side-effect-free and operates on data the caller has already
// loaded, so the same instance serves both as a live preview during interactive
// editing and as the pre-commit gate inside a transaction.
type AssignmentValidator struct{}

// NewAssignmentValidator creates a new AssignmentValidator instance.
func NewAssignmentValidator() AssignmentValidator {
	return AssignmentValidator{}
}

// Validate checks the candidate orders against existing assignments and, when a
// truck is given, against its capacity.
//
// Parameters:
//   - candidates: resolved orders the caller wants on the delivery
//   - trk: the truck proposed to carry them, nil when none is assigned yet
//   - active: current assignment of order ID to its holding active delivery,
//     keyed by kernel.UUID.String()
//   - excluding: delivery being edited, nil on creation; its own holds are ignored
//
// Returns the summed load on success. Fails with ErrEmptySelection,
// *AlreadyAssignedError, *CapacityExceededError, or a validation error from a
// malformed aggregate.
func (v AssignmentValidator) Validate(
	candidates []*order.Order,
	trk *truck.Truck,
	active map[string]AssignmentRef,
	excluding *kernel.UUID,
) (kernel.Tonnage, error) {
	if len(candidates) == 0 && excluding == nil {
		return kernel.Tonnage{}, ErrEmptySelection
	}

	var conflicts []Conflict
	used := kernel.ZeroTonnage()

	for _, o := range candidates {
		if err := o.Validate(); err != nil {
			return kernel.Tonnage{}, err
		}

		if ref, held := active[o.ID().String()]; held {
			if excluding != nil && ref.DeliveryID.IsEqual(*excluding) {
				used = used.Add(o.Quantity())
				continue
			}

			conflicts = append(conflicts, Conflict{
				OrderID:     o.ID(),
				ClientName:  o.ClientName(),
				ProductName: o.ProductName(),
				Quantity:    o.Quantity(),
				DeliveryID:  ref.DeliveryID,
				Status:      ref.Status,
				Schedule:    ref.Schedule,
			})

			continue
		}

		used = used.Add(o.Quantity())
	}

	if len(conflicts) > 0 {
		return kernel.Tonnage{}, &AlreadyAssignedError{Conflicts: conflicts}
	}

	if trk != nil {
		if err := trk.Validate(); err != nil {
			return kernel.Tonnage{}, err
		}

		if used.GreaterThan(trk.Capacity()) {
			return kernel.Tonnage{}, &CapacityExceededError{Used: used, Capacity: trk.Capacity()}
		}
	}

	return used, nil
}
