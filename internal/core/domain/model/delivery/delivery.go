package delivery

import (
	"errors"
	"fmt"
	"time"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/errs"
	"cementops/internal/pkg/guard"
)

// Domain errors for delivery operations.
var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")
	// ErrOrdersAreRequired is returned when creating a delivery with no orders.
	// Only updates may clear the order set.
	ErrOrdersAreRequired = errs.NewValueIsRequiredError("orders")
	// ErrDuplicateOrder is returned when the same order appears twice in the set.
	ErrDuplicateOrder = errs.NewValueIsInvalidError("order set contains duplicates")
	// ErrDestinationIsRequired is returned when the destination is empty.
	ErrDestinationIsRequired = errs.NewValueIsRequiredError("destination")
	// ErrScheduleInPast is returned when the schedule lies in the past at validation time.
	ErrScheduleInPast = errs.NewValueIsInvalidError("schedule must not be in the past")
	// ErrTruckRequiredForDispatch is returned when dispatching without a truck assigned.
	ErrTruckRequiredForDispatch = errs.NewValueIsRequiredError("truck must be assigned before dispatch")
)

// Delivery represents a truck-borne mission carrying customer orders.
// It is the aggregate root that owns the order set, the optional truck
// assignment, the schedule, and the append-only status history.
//
// Delivery follows these invariants:
//   - The order set is ordered and free of duplicates
//   - A mission is created with at least one order; updates may clear the set
//   - Status transitions follow the explicit transition table; every change
//     appends a history entry in the same operation
//   - Dispatch (InProgress) requires a truck
//
// Capacity and cross-mission exclusivity are validated by the
// AssignmentValidator domain service before mutations reach the aggregate;
// the aggregate enforces only what it can see in isolation.
type Delivery struct {
	id          kernel.UUID
	orderIDs    []kernel.UUID
	truckID     *kernel.UUID
	schedule    Schedule
	destination string
	notes       string
	status      Status
	history     []HistoryEntry

	guard guard.ConstructorGuard
}

// NewDelivery creates a new mission in Pending status and records the initial
// history entry attributed to the creating actor.
//
// Parameters:
//   - id: unique identifier for the mission
//   - orderIDs: orders to carry (at least one, no duplicates)
//   - truckID: optional truck assignment (nil until dispatch planning)
//   - schedule: scheduled date and optional time, not in the past at `now`
//   - destination: delivery destination (non-empty)
//   - notes: free text, may be empty
//   - actor: who creates the mission (recorded in history)
//   - now: the current time, used for the past-schedule check and the history timestamp
func NewDelivery(
	id kernel.UUID,
	orderIDs []kernel.UUID,
	truckID *kernel.UUID,
	schedule Schedule,
	destination string,
	notes string,
	actor string,
	now time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if len(orderIDs) == 0 {
		return nil, ErrOrdersAreRequired
	}

	if err := errors.Join(
		d.setID(id),
		d.SetOrders(orderIDs),
		d.setTruck(truckID),
		d.setSchedule(schedule),
		d.SetDestination(destination),
	); err != nil {
		return nil, err
	}
	d.notes = notes

	if d.schedule.InPast(now) {
		return nil, ErrScheduleInPast
	}

	entry, err := NewHistoryEntry(Pending, now, actor, "")
	if err != nil {
		return nil, err
	}
	d.history = append(d.history, entry)

	return d, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage,
// including its persisted status and history. No past-schedule check applies:
// historical missions load as they were recorded. Used by repositories only.
func RestoreDelivery(
	id kernel.UUID,
	orderIDs []kernel.UUID,
	truckID *kernel.UUID,
	schedule Schedule,
	destination string,
	notes string,
	status Status,
	history []HistoryEntry,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.SetOrders(orderIDs),
		d.setTruck(truckID),
		d.setSchedule(schedule),
		d.SetDestination(destination),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	d.notes = notes
	d.status = status

	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}
	d.history = append([]HistoryEntry(nil), history...)

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the mission's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderIDs returns a copy of the ordered order set.
func (d *Delivery) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), d.orderIDs...)
}

// HasOrder reports whether the mission carries the given order.
func (d *Delivery) HasOrder(orderID kernel.UUID) bool {
	for _, id := range d.orderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// TruckID returns the assigned truck's identifier, or nil if unassigned.
func (d *Delivery) TruckID() *kernel.UUID {
	return d.truckID
}

// Schedule returns the scheduled date and optional time of day.
func (d *Delivery) Schedule() Schedule {
	return d.schedule
}

// Destination returns the delivery destination.
func (d *Delivery) Destination() string {
	return d.destination
}

// Notes returns the free-text notes.
func (d *Delivery) Notes() string {
	return d.notes
}

// Status returns the current status of the mission.
func (d *Delivery) Status() Status {
	return d.status
}

// History returns a copy of the append-only status history, oldest first.
func (d *Delivery) History() []HistoryEntry {
	return append([]HistoryEntry(nil), d.history...)
}

// SetOrders replaces the order set. An empty set is allowed (removing all
// orders from an existing mission); duplicates are rejected.
func (d *Delivery) SetOrders(orderIDs []kernel.UUID) error {
	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return ErrDuplicateOrder
		}
		seen[id] = struct{}{}
	}

	d.orderIDs = append([]kernel.UUID(nil), orderIDs...)
	return nil
}

// AssignTruck assigns the mission to a truck.
func (d *Delivery) AssignTruck(truckID kernel.UUID) error {
	if err := truckID.Validate(); err != nil {
		return err
	}
	d.truckID = &truckID
	return nil
}

// UnassignTruck removes the truck assignment.
// Rejected once the truck is out delivering.
func (d *Delivery) UnassignTruck() error {
	if d.status == InProgress {
		return errs.NewValueIsInvalidErrorWithCause("truck",
			fmt.Errorf("cannot unassign truck while delivery is %s", d.status))
	}
	d.truckID = nil
	return nil
}

// Reschedule replaces the schedule. The new schedule must not lie in the past
// at `now`.
func (d *Delivery) Reschedule(schedule Schedule, now time.Time) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	if schedule.InPast(now) {
		return ErrScheduleInPast
	}
	d.schedule = schedule
	return nil
}

// SetDestination replaces the destination. It must remain non-empty.
func (d *Delivery) SetDestination(destination string) error {
	if destination == "" {
		return ErrDestinationIsRequired
	}
	d.destination = destination
	return nil
}

// SetNotes replaces the free-text notes.
func (d *Delivery) SetNotes(notes string) {
	d.notes = notes
}

// ChangeStatus moves the mission to the target status and appends the
// corresponding history entry. The transition must be allowed by the table;
// dispatching requires a truck. On error the aggregate is unchanged.
func (d *Delivery) ChangeStatus(target Status, actor string, note string, at time.Time) error {
	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if newStatus == InProgress && d.truckID == nil {
		return ErrTruckRequiredForDispatch
	}

	entry, err := NewHistoryEntry(newStatus, at, actor, note)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.history = append(d.history, entry)
	return nil
}

// Cancel abandons the mission, releasing its orders back to the unassigned
// pool. Shorthand for ChangeStatus to Cancelled.
func (d *Delivery) Cancel(actor string, note string, at time.Time) error {
	return d.ChangeStatus(Cancelled, actor, note, at)
}

// IsDeletable reports whether the mission may be removed from the system.
// Only never-dispatched (Pending) and abandoned (Cancelled) missions may be
// deleted; in-flight work is protected.
func (d *Delivery) IsDeletable() bool {
	return d.status == Pending || d.status == Cancelled
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setTruck(truckID *kernel.UUID) error {
	if truckID == nil {
		d.truckID = nil
		return nil
	}
	if err := truckID.Validate(); err != nil {
		return err
	}
	id := *truckID
	d.truckID = &id
	return nil
}

func (d *Delivery) setSchedule(schedule Schedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	d.schedule = schedule
	return nil
}
