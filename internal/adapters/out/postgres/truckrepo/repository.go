package truckrepo

import (
	"context"
	"errors"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/truck"
	"cementops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTruckRepository implements TruckRepository using GORM.
// The fleet roster is managed outside this service, so the repository only
// exposes reads.
type GormTruckRepository struct {
	db *gorm.DB
}

// NewGormTruckRepository creates a new GORM truck repository.
func NewGormTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

// Get retrieves a truck by ID.
func (r *GormTruckRepository) Get(ctx context.Context, id kernel.UUID) (*truck.Truck, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TruckDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("truckId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves the whole fleet ordered by ID.
func (r *GormTruckRepository) GetAll(ctx context.Context) ([]*truck.Truck, error) {
	var dtos []TruckDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	trucks := make([]*truck.Truck, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		trucks = append(trucks, t)
	}

	return trucks, nil
}
