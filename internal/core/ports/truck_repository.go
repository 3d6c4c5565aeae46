package ports

import (
	"context"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/truck"
)

// TruckRepository defines the read contract for the truck fleet.
// Fleet administration happens outside this core, so no write methods
// are exposed here.
type TruckRepository interface {
	// Get retrieves a truck by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*truck.Truck, error)

	// GetAll retrieves the whole fleet ordered by identifier.
	GetAll(ctx context.Context) ([]*truck.Truck, error)
}
