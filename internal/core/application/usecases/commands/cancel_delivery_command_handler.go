package commands

import (
	"context"
	"time"
)

// CancelDeliveryCommandHandler handles delivery cancellation.
// Cancellation is a status change like any other, so it appends a history
// entry; the orders it held become eligible for assignment again because
// the conflict lookup only considers non-cancelled missions.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelDeliveryCommandHandler creates a handler for delivery cancellation.
// Requires a UoWFactory for transactional persistence.
func NewCancelDeliveryCommandHandler(uowFactory UoWFactory) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
// Fails with an invalid-transition error when the mission is already terminal.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	if err = aggregate.Cancel(cmd.Actor(), cmd.Note(), time.Now().UTC()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
