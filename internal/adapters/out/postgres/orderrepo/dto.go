// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientDTO represents the database structure for the client catalog.
// Client intake is managed outside this core; the table exists here so
// order reads can resolve client names in one join.
type ClientDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"not null"`
}

// TableName specifies the database table name for client entities.
func (ClientDTO) TableName() string {
	return "clients"
}

// ProductDTO represents the database structure for the product catalog.
type ProductDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"not null"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// OrderDTO represents the database structure for persisting order aggregates.
// Quantities are stored as exact decimals; status is stored as its string
// form so raw read-side queries stay legible.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClientID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	RequestedDate time.Time       `gorm:"type:date;index;not null"`
	RequestedTime string
	Status        string `gorm:"index;not null"`

	Client  ClientDTO  `gorm:"foreignKey:ClientID"`
	Product ProductDTO `gorm:"foreignKey:ProductID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		ClientID:      aggregate.ClientID().Bytes(),
		ProductID:     aggregate.ProductID().Bytes(),
		Quantity:      aggregate.Quantity().Decimal(),
		RequestedDate: aggregate.RequestedDate(),
		RequestedTime: aggregate.RequestedTime(),
		Status:        aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Requires the Client and Product associations to be loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	quantity, err := kernel.NewTonnage(dto.Quantity)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, clientID, dto.Client.Name, productID, dto.Product.Name,
		quantity, dto.RequestedDate, dto.RequestedTime, status)
}
