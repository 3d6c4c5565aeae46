package commands

import (
	"context"
	"time"

	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/order"
	"cementops/internal/core/domain/model/truck"
	"cementops/internal/core/domain/services"
)

// UpdateDeliveryCommandHandler handles partial updates to a delivery mission.
//
// The conflict check always excludes the mission being edited, so resubmitting
// its own orders succeeds. An update either fully applies, history append
// included, or rolls back as a whole.
type UpdateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateDeliveryCommandHandler creates a handler for delivery update operations.
// Requires a UoWFactory for transactional persistence.
func NewUpdateDeliveryCommandHandler(uowFactory UoWFactory) UpdateDeliveryCommandHandler {
	return UpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery update command.
// Re-runs assignment validation over the target order set, applies the patch
// to the aggregate, and marks orders delivered when the mission reaches its
// terminal delivered state.
func (h UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) error {
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
	patch := cmd.Patch()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	targetOrderIDs := aggregate.OrderIDs()
	if patch.OrderIDs != nil {
		targetOrderIDs = *patch.OrderIDs
	}

	var orders []*order.Order
	if len(targetOrderIDs) > 0 {
		orders, err = orderRepo.GetByIDsForUpdate(ctx, targetOrderIDs)
		if err != nil {
			return err
		}
	}

	trk, err := h.resolveTruck(ctx, uow, aggregate, patch)
	if err != nil {
		return err
	}

	active, err := deliveryRepo.GetActiveAssignments(ctx, targetOrderIDs)
	if err != nil {
		return err
	}

	excluding := aggregate.ID()
	if _, err = services.NewAssignmentValidator().Validate(orders, trk, active, &excluding); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = h.apply(aggregate, patch, trk, cmd.Actor(), now); err != nil {
		return err
	}

	if patch.Status != nil && *patch.Status == delivery.Delivered {
		for _, o := range orders {
			if err = o.MarkDelivered(); err != nil {
				return err
			}
			if err = orderRepo.Update(ctx, o); err != nil {
				return err
			}
		}
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// resolveTruck determines which truck the validation should run against:
// the patched one, none when removal is requested, or the currently
// assigned one otherwise.
func (h UpdateDeliveryCommandHandler) resolveTruck(
	ctx context.Context,
	uow UoW,
	aggregate *delivery.Delivery,
	patch DeliveryPatch,
) (*truck.Truck, error) {
	var truckID *kernel.UUID

	switch {
	case patch.RemoveTruck:
		return nil, nil
	case patch.TruckID != nil:
		truckID = patch.TruckID
	default:
		truckID = aggregate.TruckID()
	}

	if truckID == nil {
		return nil, nil
	}

	return uow.TruckRepository().Get(ctx, *truckID)
}

func (h UpdateDeliveryCommandHandler) apply(
	aggregate *delivery.Delivery,
	patch DeliveryPatch,
	trk *truck.Truck,
	actor string,
	now time.Time,
) error {
	if patch.OrderIDs != nil {
		if err := aggregate.SetOrders(*patch.OrderIDs); err != nil {
			return err
		}
	}

	switch {
	case patch.RemoveTruck:
		if err := aggregate.UnassignTruck(); err != nil {
			return err
		}
	case patch.TruckID != nil:
		if err := aggregate.AssignTruck(trk.ID()); err != nil {
			return err
		}
	}

	if patch.ScheduledDate != nil || patch.ScheduledTime != nil {
		date := aggregate.Schedule().Date()
		if patch.ScheduledDate != nil {
			date = *patch.ScheduledDate
		}

		timeOfDay := aggregate.Schedule().TimeOfDay()
		if patch.ScheduledTime != nil {
			timeOfDay = *patch.ScheduledTime
		}

		schedule, err := delivery.NewSchedule(date, timeOfDay)
		if err != nil {
			return err
		}

		if err = aggregate.Reschedule(schedule, now); err != nil {
			return err
		}
	}

	if patch.Destination != nil {
		if err := aggregate.SetDestination(*patch.Destination); err != nil {
			return err
		}
	}

	if patch.Notes != nil {
		aggregate.SetNotes(*patch.Notes)
	}

	if patch.Status != nil {
		if err := aggregate.ChangeStatus(*patch.Status, actor, patch.StatusNote, now); err != nil {
			return err
		}
	}

	return nil
}
