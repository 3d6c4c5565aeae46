package commands

import (
	"errors"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/guard"
)

var (
	ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
		"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
	)

	// ErrDeliveryInFlight is returned when deletion is attempted on a mission
	// that is scheduled, in progress, or delivered.
	ErrDeliveryInFlight = errors.New("delivery is in flight and cannot be deleted")
)

// DeleteDeliveryCommand represents a request to remove a delivery mission and
// its history. Only pending and cancelled missions may be deleted.
type DeleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteDeliveryCommand creates a command to delete a delivery mission.
func NewDeleteDeliveryCommand(deliveryID kernel.UUID) (DeleteDeliveryCommand, error) {
	cmd := DeleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDeliveryID(deliveryID); err != nil {
		return DeleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the mission to delete.
func (c DeleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *DeleteDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}
