package commands

import (
	"errors"
	"time"

	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/guard"
)

var ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
	"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
)

// DeliveryPatch describes a partial update to a delivery mission. Nil fields
// leave the current value untouched. OrderIDs pointing at an empty slice clears
// the order set, which is allowed on update only. RemoveTruck wins over TruckID.
type DeliveryPatch struct {
	OrderIDs      *[]kernel.UUID
	TruckID       *kernel.UUID
	RemoveTruck   bool
	ScheduledDate *time.Time
	ScheduledTime *string
	Destination   *string
	Notes         *string
	Status        *delivery.Status
	StatusNote    string
}

// UpdateDeliveryCommand represents a request to modify an existing delivery
// mission: its order set, truck, schedule, destination, notes, or status.
type UpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	patch      DeliveryPatch
	actor      string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryCommand creates a command to patch a delivery mission.
// Validates identifiers and formats within the patch; business rules are
// enforced by the handler against the loaded aggregate.
func NewUpdateDeliveryCommand(
	deliveryID kernel.UUID,
	patch DeliveryPatch,
	actor string,
) (UpdateDeliveryCommand, error) {
	cmd := UpdateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setPatch(patch),
		cmd.setActor(actor),
	); err != nil {
		return UpdateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDeliveryCommandIsNotConstructed if validation fails.
func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the mission being patched.
func (c UpdateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Patch returns the requested changes.
func (c UpdateDeliveryCommand) Patch() DeliveryPatch {
	return c.patch
}

// Actor returns the identity recorded in any history entry this update appends.
func (c UpdateDeliveryCommand) Actor() string {
	return c.actor
}

func (c *UpdateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *UpdateDeliveryCommand) setPatch(patch DeliveryPatch) error {
	if patch.OrderIDs != nil {
		for _, id := range *patch.OrderIDs {
			if err := id.Validate(); err != nil {
				return err
			}
		}
	}

	if patch.TruckID != nil {
		if err := patch.TruckID.Validate(); err != nil {
			return err
		}
	}

	if patch.ScheduledTime != nil {
		if err := kernel.ValidateTimeOfDay(*patch.ScheduledTime); err != nil {
			return err
		}
	}

	if patch.Destination != nil && *patch.Destination == "" {
		return ErrDestinationIsRequired
	}

	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return err
		}
	}

	c.patch = patch
	return nil
}

func (c *UpdateDeliveryCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
