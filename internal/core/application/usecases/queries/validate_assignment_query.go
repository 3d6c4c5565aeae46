package queries

import (
	"errors"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/guard"
)

var ErrValidateAssignmentQueryIsNotConstructed = errors.New(
	"ValidateAssignmentQuery must be created via NewValidateAssignmentQuery constructor",
)

// ValidateAssignmentQuery previews an assignment check: would this order set
// fit this truck, and is any order taken by another active delivery.
//
// It runs without locks and commits nothing, so editors can call it on every
// keystroke; the same rules run again inside the transaction when the change
// is actually saved.
type ValidateAssignmentQuery struct {
	orderIDs  []kernel.UUID
	truckID   *kernel.UUID
	excluding *kernel.UUID

	guard guard.ConstructorGuard
}

// NewValidateAssignmentQuery creates an assignment preview query.
// The excluding identifier names the delivery being edited, nil for creation.
func NewValidateAssignmentQuery(
	orderIDs []kernel.UUID,
	truckID *kernel.UUID,
	excluding *kernel.UUID,
) (ValidateAssignmentQuery, error) {
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return ValidateAssignmentQuery{}, err
		}
	}
	if truckID != nil {
		if err := truckID.Validate(); err != nil {
			return ValidateAssignmentQuery{}, err
		}
	}
	if excluding != nil {
		if err := excluding.Validate(); err != nil {
			return ValidateAssignmentQuery{}, err
		}
	}

	return ValidateAssignmentQuery{
		orderIDs:  orderIDs,
		truckID:   truckID,
		excluding: excluding,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrValidateAssignmentQueryIsNotConstructed if validation fails.
func (q ValidateAssignmentQuery) Validate() error {
	return q.guard.Validate(ErrValidateAssignmentQueryIsNotConstructed)
}

// OrderIDs returns the candidate order set.
func (q ValidateAssignmentQuery) OrderIDs() []kernel.UUID {
	return q.orderIDs
}

// TruckID returns the proposed truck, nil when unassigned.
func (q ValidateAssignmentQuery) TruckID() *kernel.UUID {
	return q.truckID
}

// Excluding returns the delivery whose own holds are ignored, nil on creation.
func (q ValidateAssignmentQuery) Excluding() *kernel.UUID {
	return q.excluding
}

// ValidateAssignmentQueryResponse carries the computed load for display.
type ValidateAssignmentQueryResponse struct {
	Used kernel.Tonnage
}
