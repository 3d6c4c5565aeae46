package commands

import (
	"errors"
	"time"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrDestinationIsRequired   = errors.New("destination is required")
	ErrActorIsRequired         = errors.New("actor is required")
	ErrScheduledDateIsRequired = errors.New("scheduled date is required")
)

// CreateDeliveryCommand represents a request to create a new delivery mission
// from a set of orders, an optional truck, and a schedule.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand(
//	    kernel.NewUUID(), orderIDs, &truckID,
//	    date, "08:00", "Chantier Nord, Casablanca", "", "dispatcher")
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create delivery: %w", err)
//	}
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.UUID
	orderIDs      []kernel.UUID
	truckID       *kernel.UUID
	scheduledDate time.Time
	scheduledTime string
	destination   string
	notes         string
	actor         string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery mission.
// Validates identifiers, the time-of-day format, and required text fields.
// Order-set and capacity rules are enforced later by the handler inside the
// transaction.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	orderIDs []kernel.UUID,
	truckID *kernel.UUID,
	scheduledDate time.Time,
	scheduledTime string,
	destination string,
	notes string,
	actor string,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setOrderIDs(orderIDs),
		cmd.setTruckID(truckID),
		cmd.setSchedule(scheduledDate, scheduledTime),
		cmd.setDestination(destination),
		cmd.setActor(actor),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier assigned to the new mission.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// OrderIDs returns the orders selected for the mission.
func (c CreateDeliveryCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// TruckID returns the proposed truck, nil when unassigned.
func (c CreateDeliveryCommand) TruckID() *kernel.UUID {
	return c.truckID
}

// ScheduledDate returns the delivery date.
func (c CreateDeliveryCommand) ScheduledDate() time.Time {
	return c.scheduledDate
}

// ScheduledTime returns the optional delivery time of day.
func (c CreateDeliveryCommand) ScheduledTime() string {
	return c.scheduledTime
}

// Destination returns the delivery destination address.
func (c CreateDeliveryCommand) Destination() string {
	return c.destination
}

// Notes returns the free-text notes.
func (c CreateDeliveryCommand) Notes() string {
	return c.notes
}

// Actor returns the identity recorded in the initial history entry.
func (c CreateDeliveryCommand) Actor() string {
	return c.actor
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = orderIDs
	return nil
}

func (c *CreateDeliveryCommand) setTruckID(truckID *kernel.UUID) error {
	if truckID == nil {
		return nil
	}
	if err := truckID.Validate(); err != nil {
		return err
	}

	c.truckID = truckID
	return nil
}

func (c *CreateDeliveryCommand) setSchedule(date time.Time, timeOfDay string) error {
	if date.IsZero() {
		return ErrScheduledDateIsRequired
	}
	if err := kernel.ValidateTimeOfDay(timeOfDay); err != nil {
		return err
	}

	c.scheduledDate = date
	c.scheduledTime = timeOfDay
	return nil
}

func (c *CreateDeliveryCommand) setDestination(destination string) error {
	if destination == "" {
		return ErrDestinationIsRequired
	}

	c.destination = destination
	return nil
}

func (c *CreateDeliveryCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
