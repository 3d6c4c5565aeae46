package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/services"
	"cementops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery with its order links and history to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, links, history := fromDomain(aggregate)

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(links) > 0 {
		if err := r.db.WithContext(ctx).Create(&links).Error; err != nil {
			return err
		}
	}
	if len(history) > 0 {
		if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery, replacing its order links and appending
// any history entries recorded since the last load. History rows are never
// rewritten.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, links, history := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).
		Select("truck_id", "scheduled_date", "scheduled_time", "destination", "notes", "status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryId", aggregate.ID().String())
	}

	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", dto.ID).Delete(&DeliveryOrderDTO{}).Error; err != nil {
		return err
	}
	if len(links) > 0 {
		if err := r.db.WithContext(ctx).Create(&links).Error; err != nil {
			return err
		}
	}

	var stored int64
	if err := r.db.WithContext(ctx).Model(&DeliveryHistoryDTO{}).
		Where("delivery_id = ?", dto.ID).Count(&stored).Error; err != nil {
		return err
	}
	if int(stored) < len(history) {
		tail := history[stored:]
		if err := r.db.WithContext(ctx).Create(&tail).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID with its order links and history.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryId", id.String())
		}
		return nil, err
	}

	links, history, err := r.loadChildren(ctx, []uuid.UUID{dto.ID})
	if err != nil {
		return nil, err
	}

	return toDomain(dto, links[dto.ID], history[dto.ID])
}

// GetAll retrieves all deliveries ordered by scheduled date.
func (r *GormDeliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Order("scheduled_date, scheduled_time, id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}

	links, history, err := r.loadChildren(ctx, ids)
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto, links[dto.ID], history[dto.ID])
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, aggregate)
	}

	return deliveries, nil
}

// Delete removes a delivery together with its order links and history.
func (r *GormDeliveryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", id.Bytes()).Delete(&DeliveryOrderDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", id.Bytes()).Delete(&DeliveryHistoryDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&DeliveryDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryId", id.String())
	}

	return nil
}

// GetActiveAssignments reports, for each of the given orders, the non-cancelled
// delivery currently holding it. Orders without an active assignment are absent
// from the map. The map is keyed by order ID string.
func (r *GormDeliveryRepository) GetActiveAssignments(ctx context.Context, orderIDs []kernel.UUID) (map[string]services.AssignmentRef, error) {
	assignments := make(map[string]services.AssignmentRef)
	if len(orderIDs) == 0 {
		return assignments, nil
	}

	raw := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var rows []struct {
		OrderID       uuid.UUID
		DeliveryID    uuid.UUID
		Status        string
		ScheduledDate time.Time
		ScheduledTime string
	}
	err := r.db.WithContext(ctx).
		Table("delivery_orders").
		Select("delivery_orders.order_id, deliveries.id AS delivery_id, deliveries.status, deliveries.scheduled_date, deliveries.scheduled_time").
		Joins("JOIN deliveries ON deliveries.id = delivery_orders.delivery_id").
		Where("delivery_orders.order_id IN ?", raw).
		Where("deliveries.status <> ?", delivery.Cancelled.String()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		orderID, err := kernel.UUIDFromBytes(row.OrderID[:])
		if err != nil {
			return nil, err
		}
		deliveryID, err := kernel.UUIDFromBytes(row.DeliveryID[:])
		if err != nil {
			return nil, err
		}
		status, err := delivery.StatusFromString(row.Status)
		if err != nil {
			return nil, err
		}
		schedule, err := delivery.NewSchedule(row.ScheduledDate, row.ScheduledTime)
		if err != nil {
			return nil, err
		}

		assignments[orderID.String()] = services.AssignmentRef{
			DeliveryID: deliveryID,
			Status:     status,
			Schedule:   schedule,
		}
	}

	return assignments, nil
}

// loadChildren fetches order links and history for the given deliveries,
// links ordered by position and history by recording sequence.
func (r *GormDeliveryRepository) loadChildren(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]DeliveryOrderDTO, map[uuid.UUID][]DeliveryHistoryDTO, error) {
	var linkDTOs []DeliveryOrderDTO
	if err := r.db.WithContext(ctx).
		Where("delivery_id IN ?", ids).Order("delivery_id, position").
		Find(&linkDTOs).Error; err != nil {
		return nil, nil, err
	}

	var historyDTOs []DeliveryHistoryDTO
	if err := r.db.WithContext(ctx).
		Where("delivery_id IN ?", ids).Order("delivery_id, id").
		Find(&historyDTOs).Error; err != nil {
		return nil, nil, err
	}

	links := make(map[uuid.UUID][]DeliveryOrderDTO, len(ids))
	for _, link := range linkDTOs {
		links[link.DeliveryID] = append(links[link.DeliveryID], link)
	}

	history := make(map[uuid.UUID][]DeliveryHistoryDTO, len(ids))
	for _, entry := range historyDTOs {
		history[entry.DeliveryID] = append(history[entry.DeliveryID], entry)
	}

	return links, history, nil
}
