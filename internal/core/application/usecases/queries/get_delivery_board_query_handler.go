package queries

import (
	"context"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryBoardQueryHandler builds the schedule board read model.
// Uses direct SQL for the joins and the domain aggregator for the row merge.
type GetDeliveryBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryBoardQueryHandler creates a handler for board queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryBoardQueryHandler(db *gorm.DB) GetDeliveryBoardQueryHandler {
	return GetDeliveryBoardQueryHandler{db: db}
}

type boardDelivery struct {
	id          kernel.UUID
	status      string
	truckLabel  string
	destination string
	date        string
	timeOfDay   string
}

// Handle executes the board query. Each delivery becomes one row; its order
// lines are merged by the aggregator, then rows are sorted by the requested key.
func (h GetDeliveryBoardQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryBoardQuery,
) ([]GetDeliveryBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries, err := h.readDeliveries(ctx)
	if err != nil {
		return nil, err
	}

	linesByDelivery, err := h.readOrderLines(ctx)
	if err != nil {
		return nil, err
	}

	aggregator := services.NewScheduleAggregator()
	aggregated := make([]*services.AggregatedRow, 0, len(deliveries))
	responses := make(map[*services.AggregatedRow]*GetDeliveryBoardQueryResponse, len(deliveries))
	bare := make([]GetDeliveryBoardQueryResponse, 0)

	for _, d := range deliveries {
		response := GetDeliveryBoardQueryResponse{
			DeliveryID:  d.id,
			Status:      d.status,
			TruckLabel:  d.truckLabel,
			Destination: d.destination,
			Date:        d.date,
			Time:        d.timeOfDay,
		}

		row := aggregator.Aggregate(d.truckLabel, linesByDelivery[d.id.String()])
		if row == nil {
			bare = append(bare, response)
			continue
		}

		// The board sorts on the mission's own schedule, not the first
		// order's requested date.
		row.Date = d.date
		row.Time = d.timeOfDay

		response.Clients = row.Clients
		response.Products = row.Products
		response.TotalQuantity = row.TotalQuantity

		aggregated = append(aggregated, row)
		responses[row] = &response
	}

	aggregator.Sort(aggregated, query.SortKey())

	result := make([]GetDeliveryBoardQueryResponse, 0, len(deliveries))
	for _, row := range aggregated {
		result = append(result, *responses[row])
	}
	result = append(result, bare...)

	return result, nil
}

// readDeliveries loads every mission with its truck label resolved.
func (h GetDeliveryBoardQueryHandler) readDeliveries(ctx context.Context) ([]boardDelivery, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.status,
			COALESCE(t.plate_number, ''),
			d.destination,
			to_char(d.scheduled_date, 'YYYY-MM-DD'),
			COALESCE(d.scheduled_time, '')
		FROM deliveries d
		LEFT JOIN trucks t ON t.id = d.truck_id
		ORDER BY d.scheduled_date, d.scheduled_time NULLS FIRST, d.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]boardDelivery, 0)

	for rows.Next() {
		var (
			id uuid.UUID
			d  boardDelivery
		)

		if err = rows.Scan(&id, &d.status, &d.truckLabel, &d.destination, &d.date, &d.timeOfDay); err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		d.id = deliveryID

		deliveries = append(deliveries, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

// readOrderLines loads every delivery's order lines in stored position order,
// keyed by delivery identifier.
func (h GetDeliveryBoardQueryHandler) readOrderLines(
	ctx context.Context,
) (map[string][]services.OrderLine, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			del_o.delivery_id,
			c.name,
			p.name,
			o.quantity,
			to_char(o.requested_date, 'YYYY-MM-DD'),
			COALESCE(o.requested_time, '')
		FROM delivery_orders del_o
		JOIN orders o ON o.id = del_o.order_id
		JOIN clients c ON c.id = o.client_id
		JOIN products p ON p.id = o.product_id
		ORDER BY del_o.delivery_id, del_o.position
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make(map[string][]services.OrderLine)

	for rows.Next() {
		var (
			deliveryID uuid.UUID
			line       services.OrderLine
		)

		if err = rows.Scan(
			&deliveryID, &line.ClientName, &line.ProductName,
			&line.Quantity, &line.RequestedDate, &line.RequestedTime,
		); err != nil {
			return nil, err
		}

		key := deliveryID.String()
		lines[key] = append(lines[key], line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
