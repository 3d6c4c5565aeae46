package queries

import (
	"context"
	"time"

	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/order"
	"cementops/internal/core/domain/model/truck"
	"cementops/internal/core/domain/services"
	"cementops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidateAssignmentQueryHandler runs the assignment check over a plain
// snapshot read. Structured validation failures from the domain service are
// passed through untouched so callers can render them precisely.
type ValidateAssignmentQueryHandler struct {
	db *gorm.DB
}

// NewValidateAssignmentQueryHandler creates a handler for assignment previews.
// Requires a GORM database connection for query execution.
func NewValidateAssignmentQueryHandler(db *gorm.DB) ValidateAssignmentQueryHandler {
	return ValidateAssignmentQueryHandler{db: db}
}

// Handle executes the preview. Unknown order identifiers surface as
// object-not-found errors before the domain check runs.
func (h ValidateAssignmentQueryHandler) Handle(
	ctx context.Context,
	query ValidateAssignmentQuery,
) (ValidateAssignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateAssignmentQueryResponse{}, err
	}

	orders, err := h.readOrders(ctx, query.OrderIDs())
	if err != nil {
		return ValidateAssignmentQueryResponse{}, err
	}

	var trk *truck.Truck
	if query.TruckID() != nil {
		trk, err = h.readTruck(ctx, *query.TruckID())
		if err != nil {
			return ValidateAssignmentQueryResponse{}, err
		}
	}

	active, err := h.readActiveAssignments(ctx, query.OrderIDs())
	if err != nil {
		return ValidateAssignmentQueryResponse{}, err
	}

	used, err := services.NewAssignmentValidator().Validate(orders, trk, active, query.Excluding())
	if err != nil {
		return ValidateAssignmentQueryResponse{}, err
	}

	return ValidateAssignmentQueryResponse{Used: used}, nil
}

func (h ValidateAssignmentQueryHandler) readOrders(
	ctx context.Context, ids []kernel.UUID,
) ([]*order.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.client_id,
			c.name,
			o.product_id,
			p.name,
			o.quantity,
			o.requested_date,
			COALESCE(o.requested_time, ''),
			o.status
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		JOIN products p ON p.id = o.product_id
		WHERE o.id IN ?
	`, uuidStrings(ids)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*order.Order, 0, len(ids))
	found := make(map[string]bool, len(ids))

	for rows.Next() {
		var (
			id, clientID, productID uuid.UUID
			clientName, productName string
			quantity                string
			requestedDate           time.Time
			requestedTime           string
			status                  string
		)

		if err = rows.Scan(
			&id, &clientID, &clientName, &productID, &productName,
			&quantity, &requestedDate, &requestedTime, &status,
		); err != nil {
			return nil, err
		}

		aggregate, restoreErr := restoreBacklogOrder(
			id, clientID, clientName, productID, productName,
			quantity, requestedDate, requestedTime, status)
		if restoreErr != nil {
			return nil, restoreErr
		}

		found[aggregate.ID().String()] = true
		orders = append(orders, aggregate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if !found[id.String()] {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
	}

	return orders, nil
}

func (h ValidateAssignmentQueryHandler) readTruck(
	ctx context.Context, id kernel.UUID,
) (*truck.Truck, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, plate_number, driver_name, capacity
		FROM trucks
		WHERE id = ?
	`, id.String()).Row()

	var (
		truckID                 uuid.UUID
		plateNumber, driverName string
		capacity                string
	)

	if err := row.Scan(&truckID, &plateNumber, &driverName, &capacity); err != nil {
		return nil, errs.NewObjectNotFoundErrorWithCause("truckId", id, err)
	}

	kernelID, err := kernel.UUIDFromBytes(truckID[:])
	if err != nil {
		return nil, err
	}

	capacityTonnage, err := kernel.ParseTonnage(capacity)
	if err != nil {
		return nil, err
	}

	return truck.NewTruck(kernelID, plateNumber, driverName, capacityTonnage)
}

func (h ValidateAssignmentQueryHandler) readActiveAssignments(
	ctx context.Context, ids []kernel.UUID,
) (map[string]services.AssignmentRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			del_o.order_id,
			d.id,
			d.status,
			d.scheduled_date,
			COALESCE(d.scheduled_time, '')
		FROM delivery_orders del_o
		JOIN deliveries d ON d.id = del_o.delivery_id
		WHERE d.status <> ?
		  AND del_o.order_id IN ?
	`, delivery.Cancelled.String(), uuidStrings(ids)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	active := make(map[string]services.AssignmentRef)

	for rows.Next() {
		var (
			orderID, deliveryID uuid.UUID
			status              string
			scheduledDate       time.Time
			scheduledTime       string
		)

		if err = rows.Scan(&orderID, &deliveryID, &status, &scheduledDate, &scheduledTime); err != nil {
			return nil, err
		}

		holderID, idErr := kernel.UUIDFromBytes(deliveryID[:])
		if idErr != nil {
			return nil, idErr
		}

		holderStatus, statusErr := delivery.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}

		schedule, scheduleErr := delivery.NewSchedule(scheduledDate, scheduledTime)
		if scheduleErr != nil {
			return nil, scheduleErr
		}

		active[orderID.String()] = services.AssignmentRef{
			DeliveryID: holderID,
			Status:     holderStatus,
			Schedule:   schedule,
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return active, nil
}

func uuidStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return out
}
