package commands

import (
	"context"
)

// DeleteDeliveryCommandHandler handles delivery deletion.
// Deletion is a safeguard-gated hard remove: in-flight missions must be
// cancelled first.
type DeleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteDeliveryCommandHandler creates a handler for delivery deletion.
// Requires a UoWFactory for transactional persistence.
func NewDeleteDeliveryCommandHandler(uowFactory UoWFactory) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command.
// Fails with ErrDeliveryInFlight unless the mission is pending or cancelled.
func (h DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if !aggregate.IsDeletable() {
		return ErrDeliveryInFlight
	}

	if err = deliveryRepo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
