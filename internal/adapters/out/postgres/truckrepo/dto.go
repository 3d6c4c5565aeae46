package truckrepo

import (
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/truck"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TruckDTO represents the database model for trucks.
type TruckDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PlateNumber string          `gorm:"not null"`
	DriverName  string          `gorm:"not null"`
	Capacity    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
}

// TableName specifies the table name for GORM.
func (TruckDTO) TableName() string {
	return "trucks"
}

// toDomain converts DTO to domain aggregate.
func toDomain(dto TruckDTO) (*truck.Truck, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	capacity, err := kernel.NewTonnage(dto.Capacity)
	if err != nil {
		return nil, err
	}

	return truck.NewTruck(id, dto.PlateNumber, dto.DriverName, capacity)
}
