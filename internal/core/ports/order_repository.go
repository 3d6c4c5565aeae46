// Package ports defines repository interfaces for the cement delivery domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are created by intake (outside this core) and mutated here only to
// reflect delivery outcomes.
type OrderRepository interface {
	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// with client and product names resolved.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIDs retrieves the orders for the given identifiers. Any identifier
	// that does not resolve yields an ObjectNotFoundError naming it.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// GetByIDsForUpdate behaves like GetByIDs but takes row locks on the
	// selected orders for the remainder of the transaction, serializing
	// concurrent assignment attempts on the same order set.
	GetByIDsForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// GetAllSchedulable retrieves every order in Pending or Validated status,
	// ordered by requested date and time. Used to build the generation backlog.
	GetAllSchedulable(ctx context.Context) ([]*order.Order, error)
}
