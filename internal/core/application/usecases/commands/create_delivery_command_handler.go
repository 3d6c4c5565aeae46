package commands

import (
	"context"
	"time"

	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/order"
	"cementops/internal/core/domain/model/truck"
	"cementops/internal/core/domain/services"
)

// CreateDeliveryCommandHandler handles the business logic for delivery creation.
// Locks the selected orders, runs the assignment validation against capacity and
// existing assignments, and persists the new mission with its initial history
// entry in one transaction.
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation operations.
// Requires a UoWFactory for transactional persistence.
func NewCreateDeliveryCommandHandler(uowFactory UoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery creation command.
// The order rows are locked before the conflict check so that two concurrent
// requests cannot both claim the same order.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
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

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()

	var orders []*order.Order
	if len(cmd.OrderIDs()) > 0 {
		var err error
		orders, err = orderRepo.GetByIDsForUpdate(ctx, cmd.OrderIDs())
		if err != nil {
			return err
		}
	}

	var trk *truck.Truck
	if cmd.TruckID() != nil {
		var err error
		trk, err = uow.TruckRepository().Get(ctx, *cmd.TruckID())
		if err != nil {
			return err
		}
	}

	active, err := deliveryRepo.GetActiveAssignments(ctx, cmd.OrderIDs())
	if err != nil {
		return err
	}

	if _, err = services.NewAssignmentValidator().Validate(orders, trk, active, nil); err != nil {
		return err
	}

	schedule, err := delivery.NewSchedule(cmd.ScheduledDate(), cmd.ScheduledTime())
	if err != nil {
		return err
	}

	aggregate, err := delivery.NewDelivery(
		cmd.DeliveryID(), cmd.OrderIDs(), cmd.TruckID(), schedule,
		cmd.Destination(), cmd.Notes(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = deliveryRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
