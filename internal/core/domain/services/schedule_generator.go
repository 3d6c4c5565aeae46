package services

import (
	"errors"
	"sort"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/order"
	"cementops/internal/core/domain/model/truck"
)

// ErrDailyLimitIsInvalid is returned when the configured production limit is not positive.
var ErrDailyLimitIsInvalid = errors.New("daily production limit must be positive")

// TruckAssignment is one truck's slice of the generated schedule. Trucks that
// receive no orders still appear with an empty order list.
type TruckAssignment struct {
	Truck  *truck.Truck
	Orders []*order.Order
	Load   kernel.Tonnage
}

// Stats summarizes a generation pass for reporting.
type Stats struct {
	DailyLimit           kernel.Tonnage
	TotalPendingOrders   int
	TotalPendingQuantity kernel.Tonnage
	ScheduledOrders      int
	ScheduledQuantity    kernel.Tonnage
	TrucksUtilized       int
	TotalTrucks          int
	TotalCapacity        kernel.Tonnage
}

// ScheduleGenerator is a domain service that partitions the pending order backlog
// across the truck fleet.
//
// Key responsibilities:
//   - Packing orders into trucks without exceeding per-truck capacity
//   - Honoring the plant's daily production limit across all trucks
//   - Producing summary statistics alongside the raw assignment
//
// Business rules:
//   - Orders already bound to an active delivery never enter the backlog
//   - An order that does not fit the current truck is deferred, never discarded
//   - Orders left over after the last truck remain unscheduled; this is a
//     normal reported outcome, not an error
//   - Identical inputs always produce the identical schedule
//
// The generator is a pure computation over a snapshot. It does not commit
// deliveries; the caller decides whether to persist the proposal.
type ScheduleGenerator struct{}

// NewScheduleGenerator creates a new ScheduleGenerator instance.
func NewScheduleGenerator() ScheduleGenerator {
	return ScheduleGenerator{}
}

// Generate packs the backlog into the fleet under the daily limit.
//
// Parameters:
//   - backlog: schedulable orders not yet bound to an active delivery
//   - trucks: the full fleet
//   - dailyLimit: total tonnage the plant can ship in one day
//
// Orders are taken in requested date/time order with the identifier as the tie
// breaker, trucks in identifier order. Both sorts make the pass deterministic.
func (g ScheduleGenerator) Generate(
	backlog []*order.Order,
	trucks []*truck.Truck,
	dailyLimit kernel.Tonnage,
) ([]TruckAssignment, Stats, error) {
	if !dailyLimit.IsPositive() {
		return nil, Stats{}, ErrDailyLimitIsInvalid
	}

	for _, o := range backlog {
		if err := o.Validate(); err != nil {
			return nil, Stats{}, err
		}
	}
	for _, t := range trucks {
		if err := t.Validate(); err != nil {
			return nil, Stats{}, err
		}
	}

	pending := sortBacklog(backlog)
	fleet := sortFleet(trucks)

	stats := Stats{
		DailyLimit:           dailyLimit,
		TotalPendingOrders:   len(pending),
		TotalPendingQuantity: sumQuantities(pending),
		TotalTrucks:          len(fleet),
		TotalCapacity:        sumCapacities(fleet),
		ScheduledQuantity:    kernel.ZeroTonnage(),
	}

	assignments := make([]TruckAssignment, 0, len(fleet))
	shipped := kernel.ZeroTonnage()

	for _, t := range fleet {
		assignment := TruckAssignment{Truck: t, Load: kernel.ZeroTonnage()}

		remaining := pending[:0:0]
		for _, o := range pending {
			load := assignment.Load.Add(o.Quantity())
			total := shipped.Add(o.Quantity())

			if load.GreaterThan(t.Capacity()) || total.GreaterThan(dailyLimit) {
				remaining = append(remaining, o)
				continue
			}

			assignment.Orders = append(assignment.Orders, o)
			assignment.Load = load
			shipped = total
			stats.ScheduledOrders++
		}
		pending = remaining

		if len(assignment.Orders) > 0 {
			stats.TrucksUtilized++
		}

		assignments = append(assignments, assignment)
	}

	stats.ScheduledQuantity = shipped

	return assignments, stats, nil
}

func sortBacklog(backlog []*order.Order) []*order.Order {
	sorted := make([]*order.Order, len(backlog))
	copy(sorted, backlog)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.RequestedDate().Equal(b.RequestedDate()) {
			return a.RequestedDate().Before(b.RequestedDate())
		}
		if a.RequestedTime() != b.RequestedTime() {
			return a.RequestedTime() < b.RequestedTime()
		}

		return a.ID().String() < b.ID().String()
	})

	return sorted
}

func sortFleet(trucks []*truck.Truck) []*truck.Truck {
	sorted := make([]*truck.Truck, len(trucks))
	copy(sorted, trucks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID().String() < sorted[j].ID().String()
	})

	return sorted
}

func sumQuantities(orders []*order.Order) kernel.Tonnage {
	total := kernel.ZeroTonnage()
	for _, o := range orders {
		total = total.Add(o.Quantity())
	}

	return total
}

func sumCapacities(trucks []*truck.Truck) kernel.Tonnage {
	total := kernel.ZeroTonnage()
	for _, t := range trucks {
		total = total.Add(t.Capacity())
	}

	return total
}
