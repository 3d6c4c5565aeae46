package queries

import (
	"errors"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/services"
	"cementops/internal/pkg/guard"
)

var (
	ErrGetDeliveryBoardQueryIsNotConstructed = errors.New(
		"GetDeliveryBoardQuery must be created via NewGetDeliveryBoardQuery constructor",
	)
	ErrSortKeyIsInvalid = errors.New("sort key must be one of: order, time, client")
)

// GetDeliveryBoardQuery retrieves the schedule board: one aggregated row per
// delivery mission with clients merged, quantities summed, and products
// de-duplicated, in the requested sort order.
//
// Example:
//
//	query, err := NewGetDeliveryBoardQuery(services.SortByTime)
//	if err != nil {
//	    return err
//	}
//
//	rows, err := NewGetDeliveryBoardQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load board: %w", err)
//	}
//	for _, row := range rows {
//	    fmt.Printf("%s | %s | %sT\n", row.TruckLabel, row.Clients, row.TotalQuantity)
//	}
type GetDeliveryBoardQuery struct {
	sortKey services.SortKey

	guard guard.ConstructorGuard
}

// NewGetDeliveryBoardQuery creates a query for the schedule board.
// Accepts one of the three supported sort keys.
func NewGetDeliveryBoardQuery(sortKey services.SortKey) (GetDeliveryBoardQuery, error) {
	switch sortKey {
	case services.SortByOrder, services.SortByTime, services.SortByClient:
	default:
		return GetDeliveryBoardQuery{}, ErrSortKeyIsInvalid
	}

	return GetDeliveryBoardQuery{
		sortKey: sortKey,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryBoardQueryIsNotConstructed if validation fails.
func (q GetDeliveryBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryBoardQueryIsNotConstructed)
}

// SortKey returns the requested row ordering.
func (q GetDeliveryBoardQuery) SortKey() services.SortKey {
	return q.sortKey
}

// GetDeliveryBoardQueryResponse is one aggregated board row. Missions without
// orders appear with empty merge fields rather than being dropped.
type GetDeliveryBoardQueryResponse struct {
	DeliveryID    kernel.UUID
	Status        string
	TruckLabel    string
	Destination   string
	Clients       string
	Products      []string
	TotalQuantity kernel.Tonnage
	Date          string
	Time          string
}
