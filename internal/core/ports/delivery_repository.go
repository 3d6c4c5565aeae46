package ports

import (
	"context"

	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/services"
)

// DeliveryRepository defines the persistence contract for delivery aggregates,
// including their append-only history.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate with its initial history entry.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate. History
	// entries present on the aggregate but not yet stored are appended in
	// the same transaction; stored entries are never touched.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier,
	// history included.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetAll retrieves every delivery ordered by scheduled date.
	GetAll(ctx context.Context) ([]*delivery.Delivery, error)

	// Delete removes a delivery and its history. Callers must check
	// IsDeletable first.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetActiveAssignments resolves, in one batched query, which of the given
	// orders are currently held by a non-cancelled delivery. The result maps
	// kernel.UUID.String() of the order to the holding delivery.
	GetActiveAssignments(ctx context.Context, orderIDs []kernel.UUID) (map[string]services.AssignmentRef, error)
}
