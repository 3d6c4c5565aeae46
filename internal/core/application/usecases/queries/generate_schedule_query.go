// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/services"
	"cementops/internal/pkg/guard"
)

var ErrGenerateScheduleQueryIsNotConstructed = errors.New(
	"GenerateScheduleQuery must be created via NewGenerateScheduleQuery constructor",
)

// GenerateScheduleQuery asks for a schedule proposal: the pending backlog
// packed across the fleet under the given daily production limit.
//
// The proposal is transient. Nothing is committed; a dispatcher turns
// accepted rows into real deliveries through the create command.
//
// Example:
//
//	query, err := NewGenerateScheduleQuery(dailyLimit)
//	if err != nil {
//	    return err
//	}
//
//	proposal, err := NewGenerateScheduleQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to generate schedule: %w", err)
//	}
//	fmt.Printf("scheduled %d of %d orders\n",
//	    proposal.Stats.ScheduledOrders, proposal.Stats.TotalPendingOrders)
type GenerateScheduleQuery struct {
	dailyLimit kernel.Tonnage

	guard guard.ConstructorGuard
}

// NewGenerateScheduleQuery creates a query to compute a schedule proposal.
// The daily limit must be positive.
func NewGenerateScheduleQuery(dailyLimit kernel.Tonnage) (GenerateScheduleQuery, error) {
	if !dailyLimit.IsPositive() {
		return GenerateScheduleQuery{}, services.ErrDailyLimitIsInvalid
	}

	return GenerateScheduleQuery{
		dailyLimit: dailyLimit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGenerateScheduleQueryIsNotConstructed if validation fails.
func (q GenerateScheduleQuery) Validate() error {
	return q.guard.Validate(ErrGenerateScheduleQueryIsNotConstructed)
}

// DailyLimit returns the production ceiling for the proposal.
func (q GenerateScheduleQuery) DailyLimit() kernel.Tonnage {
	return q.dailyLimit
}

// ScheduledOrderResponse is one order slot inside a proposed truck load.
type ScheduledOrderResponse struct {
	OrderID       kernel.UUID
	ClientName    string
	ProductName   string
	Quantity      kernel.Tonnage
	RequestedDate string
	RequestedTime string
}

// TruckScheduleResponse is one truck's proposed load. Trucks left empty by
// the packing pass are included with an empty order list.
type TruckScheduleResponse struct {
	TruckID     kernel.UUID
	PlateNumber string
	DriverName  string
	Capacity    kernel.Tonnage
	Load        kernel.Tonnage
	Orders      []ScheduledOrderResponse
}

// GenerateScheduleQueryResponse is the full proposal with its statistics.
type GenerateScheduleQueryResponse struct {
	Trucks []TruckScheduleResponse
	Stats  services.Stats
}
