package deliveryrepo

import (
	"time"

	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database model for deliveries.
type DeliveryDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TruckID       *uuid.UUID `gorm:"type:uuid;index"`
	ScheduledDate time.Time  `gorm:"type:date;index;not null"`
	ScheduledTime string
	Destination   string `gorm:"not null"`
	Notes         string
	Status        string `gorm:"index;not null"`
}

// TableName specifies the table name for GORM.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// DeliveryOrderDTO links a delivery to one of its orders. Position preserves
// the order in which the dispatcher listed them.
type DeliveryOrderDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null"`
}

// TableName specifies the table name for GORM.
func (DeliveryOrderDTO) TableName() string {
	return "delivery_orders"
}

// DeliveryHistoryDTO represents one status-change record of a delivery.
type DeliveryHistoryDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index;not null"`
	Status     string    `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null"`
	Actor      string    `gorm:"not null"`
	Note       string
}

// TableName specifies the table name for GORM.
func (DeliveryHistoryDTO) TableName() string {
	return "delivery_history"
}

// fromDomain converts domain aggregate to its DTOs.
func fromDomain(aggregate *delivery.Delivery) (DeliveryDTO, []DeliveryOrderDTO, []DeliveryHistoryDTO) {
	var truckID *uuid.UUID
	if aggregate.TruckID() != nil {
		raw := aggregate.TruckID().Bytes()
		truckID = &raw
	}

	dto := DeliveryDTO{
		ID:            aggregate.ID().Bytes(),
		TruckID:       truckID,
		ScheduledDate: aggregate.Schedule().Date(),
		ScheduledTime: aggregate.Schedule().TimeOfDay(),
		Destination:   aggregate.Destination(),
		Notes:         aggregate.Notes(),
		Status:        aggregate.Status().String(),
	}

	links := make([]DeliveryOrderDTO, 0, len(aggregate.OrderIDs()))
	for i, orderID := range aggregate.OrderIDs() {
		links = append(links, DeliveryOrderDTO{
			DeliveryID: dto.ID,
			OrderID:    orderID.Bytes(),
			Position:   i,
		})
	}

	history := make([]DeliveryHistoryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, DeliveryHistoryDTO{
			DeliveryID: dto.ID,
			Status:     entry.Status().String(),
			RecordedAt: entry.RecordedAt(),
			Actor:      entry.Actor(),
			Note:       entry.Note(),
		})
	}

	return dto, links, history
}

// toDomain converts DTOs to domain aggregate. Links must come ordered by
// position and history by recording sequence.
func toDomain(dto DeliveryDTO, links []DeliveryOrderDTO, historyDTOs []DeliveryHistoryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var truckID *kernel.UUID
	if dto.TruckID != nil {
		tid, err := kernel.UUIDFromBytes(dto.TruckID[:])
		if err != nil {
			return nil, err
		}
		truckID = &tid
	}

	orderIDs := make([]kernel.UUID, 0, len(links))
	for _, link := range links {
		orderID, err := kernel.UUIDFromBytes(link.OrderID[:])
		if err != nil {
			return nil, err
		}
		orderIDs = append(orderIDs, orderID)
	}

	schedule, err := delivery.NewSchedule(dto.ScheduledDate, dto.ScheduledTime)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]delivery.HistoryEntry, 0, len(historyDTOs))
	for _, h := range historyDTOs {
		entryStatus, err := delivery.StatusFromString(h.Status)
		if err != nil {
			return nil, err
		}
		entry, err := delivery.NewHistoryEntry(entryStatus, h.RecordedAt, h.Actor, h.Note)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	return delivery.RestoreDelivery(id, orderIDs, truckID, schedule, dto.Destination, dto.Notes, status, history)
}
