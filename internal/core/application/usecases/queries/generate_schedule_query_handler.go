package queries

import (
	"context"
	"time"

	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/order"
	"cementops/internal/core/domain/model/truck"
	"cementops/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateScheduleQueryHandler computes a schedule proposal from a consistent
// snapshot of the backlog and the fleet. Uses direct SQL for the snapshot read
// and the domain generator for the packing itself.
type GenerateScheduleQueryHandler struct {
	db *gorm.DB
}

// NewGenerateScheduleQueryHandler creates a handler for schedule generation queries.
// Requires a GORM database connection for query execution.
func NewGenerateScheduleQueryHandler(db *gorm.DB) GenerateScheduleQueryHandler {
	return GenerateScheduleQueryHandler{db: db}
}

// Handle executes the query: reads every schedulable order not held by an
// active delivery plus the whole fleet, runs the packing pass, and maps the
// result to the read model.
func (h GenerateScheduleQueryHandler) Handle(
	ctx context.Context,
	query GenerateScheduleQuery,
) (GenerateScheduleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GenerateScheduleQueryResponse{}, err
	}

	backlog, err := h.readBacklog(ctx)
	if err != nil {
		return GenerateScheduleQueryResponse{}, err
	}

	fleet, err := h.readFleet(ctx)
	if err != nil {
		return GenerateScheduleQueryResponse{}, err
	}

	assignments, stats, err := services.NewScheduleGenerator().Generate(backlog, fleet, query.DailyLimit())
	if err != nil {
		return GenerateScheduleQueryResponse{}, err
	}

	response := GenerateScheduleQueryResponse{
		Trucks: make([]TruckScheduleResponse, 0, len(assignments)),
		Stats:  stats,
	}

	for _, assignment := range assignments {
		truckResponse := TruckScheduleResponse{
			TruckID:     assignment.Truck.ID(),
			PlateNumber: assignment.Truck.PlateNumber(),
			DriverName:  assignment.Truck.DriverName(),
			Capacity:    assignment.Truck.Capacity(),
			Load:        assignment.Load,
			Orders:      make([]ScheduledOrderResponse, 0, len(assignment.Orders)),
		}

		for _, o := range assignment.Orders {
			truckResponse.Orders = append(truckResponse.Orders, ScheduledOrderResponse{
				OrderID:       o.ID(),
				ClientName:    o.ClientName(),
				ProductName:   o.ProductName(),
				Quantity:      o.Quantity(),
				RequestedDate: o.RequestedDate().Format("2006-01-02"),
				RequestedTime: o.RequestedTime(),
			})
		}

		response.Trucks = append(response.Trucks, truckResponse)
	}

	return response, nil
}

// readBacklog loads pending and validated orders that no non-cancelled
// delivery currently holds.
func (h GenerateScheduleQueryHandler) readBacklog(ctx context.Context) ([]*order.Order, error) {
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
		WHERE o.status IN ?
		  AND o.id NOT IN (
			SELECT del_o.order_id
			FROM delivery_orders del_o
			JOIN deliveries d ON d.id = del_o.delivery_id
			WHERE d.status <> ?
		  )
		ORDER BY o.requested_date, o.requested_time NULLS FIRST, o.id
	`,
		[]string{order.Pending.String(), order.Validated.String()},
		delivery.Cancelled.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	backlog := make([]*order.Order, 0)

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

		aggregate, err := restoreBacklogOrder(
			id, clientID, clientName, productID, productName,
			quantity, requestedDate, requestedTime, status)
		if err != nil {
			return nil, err
		}

		backlog = append(backlog, aggregate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return backlog, nil
}

// readFleet loads all trucks ordered by identifier.
func (h GenerateScheduleQueryHandler) readFleet(ctx context.Context) ([]*truck.Truck, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, plate_number, driver_name, capacity
		FROM trucks
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fleet := make([]*truck.Truck, 0)

	for rows.Next() {
		var (
			id                      uuid.UUID
			plateNumber, driverName string
			capacity                string
		)

		if err = rows.Scan(&id, &plateNumber, &driverName, &capacity); err != nil {
			return nil, err
		}

		truckID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		capacityTonnage, capErr := kernel.ParseTonnage(capacity)
		if capErr != nil {
			return nil, capErr
		}

		aggregate, truckErr := truck.NewTruck(truckID, plateNumber, driverName, capacityTonnage)
		if truckErr != nil {
			return nil, truckErr
		}

		fleet = append(fleet, aggregate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fleet, nil
}

func restoreBacklogOrder(
	id, clientID uuid.UUID,
	clientName string,
	productID uuid.UUID,
	productName string,
	quantity string,
	requestedDate time.Time,
	requestedTime string,
	status string,
) (*order.Order, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	clientUUID, err := kernel.UUIDFromBytes(clientID[:])
	if err != nil {
		return nil, err
	}

	productUUID, err := kernel.UUIDFromBytes(productID[:])
	if err != nil {
		return nil, err
	}

	quantityTonnage, err := kernel.ParseTonnage(quantity)
	if err != nil {
		return nil, err
	}

	orderStatus, err := order.StatusFromString(status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		orderID, clientUUID, clientName, productUUID, productName,
		quantityTonnage, requestedDate, requestedTime, orderStatus)
}
