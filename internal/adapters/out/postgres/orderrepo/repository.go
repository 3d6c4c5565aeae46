package orderrepo

import (
	"context"
	"errors"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/order"
	"cementops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Update saves an existing order to the database.
// Only the columns owned by the aggregate are written; catalog rows stay untouched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).
		Select("client_id", "product_id", "quantity", "requested_date", "requested_time", "status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its client and product names resolved.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Product").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves the orders for the given identifiers.
func (r *GormOrderRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	return r.getByIDs(ctx, ids, false)
}

// GetByIDsForUpdate retrieves the orders for the given identifiers and locks
// their rows until the transaction ends. The lock serializes concurrent
// assignment attempts touching the same orders.
func (r *GormOrderRepository) GetByIDsForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	return r.getByIDs(ctx, ids, true)
}

// GetAllSchedulable retrieves pending and validated orders ordered by
// requested date and time.
func (r *GormOrderRepository) GetAllSchedulable(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Product").
		Where("status IN ?", []string{order.Pending.String(), order.Validated.String()}).
		Order("requested_date, requested_time, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func (r *GormOrderRepository) getByIDs(ctx context.Context, ids []kernel.UUID, lock bool) ([]*order.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	query := r.db.WithContext(ctx)
	if lock {
		// Row locks apply to the orders table only; joined catalog rows are
		// loaded separately via Preload and stay unlocked.
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dtos []OrderDTO
	if err := query.Preload("Client").Preload("Product").
		Where("id IN ?", raw).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(dtos))
	for _, dto := range dtos {
		found[dto.ID] = true
	}
	for _, id := range ids {
		if !found[id.Bytes()] {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
