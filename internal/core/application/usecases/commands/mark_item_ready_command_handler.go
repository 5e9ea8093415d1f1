package commands

import (
	"context"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"
	"expeditor/internal/core/domain/model/order"
	"expeditor/internal/core/domain/model/printjob"
	"expeditor/internal/core/domain/services"
)

// MarkItemReadyCommandHandler processes item completion requests.
//
// In one transaction the handler advances the item to ready, enqueues a print
// job with a frozen ticket snapshot and, when the item was the order's last
// unfinished one, computes the buffer hold for the parent order. The buffer
// length comes from the dynamic volume bands, or from the static per-day
// fallback when the bands are disabled.
type MarkItemReadyCommandHandler struct {
	uowFactory UoWFactory
	settings   DispatchSettings
	counter    ActiveOrderCounter
	calculator services.BufferCalculator
}

// NewMarkItemReadyCommandHandler creates a handler for item completion operations.
func NewMarkItemReadyCommandHandler(
	uowFactory UoWFactory,
	settings DispatchSettings,
	counter ActiveOrderCounter,
) MarkItemReadyCommandHandler {
	return MarkItemReadyCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		counter:    counter,
		calculator: services.NewBufferCalculator(),
	}
}

// Handle processes the completion command.
// Returns kitchenitem.ErrItemNotClaimed when the operator does not hold the
// claim and errs.ErrConcurrencyConflict when a concurrent actor won the race.
func (h MarkItemReadyCommandHandler) Handle(ctx context.Context, command MarkItemReadyCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()
	orderRepo := uow.OrderRepository()
	printJobRepo := uow.PrintJobRepository()

	item, err := itemRepo.Get(ctx, command.ItemID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	expectedStatus := item.Status()
	expectedClaimedBy := item.ClaimedBy()

	if err = item.MarkReady(command.UserID(), now); err != nil {
		return err
	}

	if err = itemRepo.UpdateCAS(ctx, item, expectedStatus, expectedClaimedBy); err != nil {
		return err
	}

	parent, err := orderRepo.Get(ctx, item.OrderID())
	if err != nil {
		return err
	}

	job, err := printjob.NewPrintJob(kernel.NewUUID(), item.ID(), ticketSnapshot(item, parent), now)
	if err != nil {
		return err
	}

	if err = printJobRepo.Add(ctx, job); err != nil {
		return err
	}

	if err = h.holdParentIfComplete(ctx, uow, item, parent, now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// holdParentIfComplete puts the parent order on buffer hold once every item
// of the order is ready. Re-applying on an already held order is a no-op,
// which keeps the handler idempotent under duplicate feed deliveries.
func (h MarkItemReadyCommandHandler) holdParentIfComplete(
	ctx context.Context,
	uow UoW,
	item *kitchenitem.Item,
	parent *order.Order,
	now time.Time,
) error {
	if parent.Status() != order.Pending {
		return nil
	}

	siblings, err := uow.ItemRepository().GetAllByOrder(ctx, item.OrderID())
	if err != nil {
		return err
	}

	for _, sibling := range siblings {
		if sibling.Status() != kitchenitem.Ready {
			return nil
		}
	}

	hold, err := h.bufferHold(ctx, now)
	if err != nil {
		return err
	}

	if err = parent.HoldForBuffer(now.Add(hold)); err != nil {
		return err
	}

	return uow.OrderRepository().UpdateCAS(ctx, parent, order.Pending, nil)
}

// bufferHold resolves the hold duration from the dynamic bands, falling back
// to the static per-day timeout when the bands are disabled.
func (h MarkItemReadyCommandHandler) bufferHold(ctx context.Context, now time.Time) (time.Duration, error) {
	count, err := h.counter.ActiveOrderCount(ctx)
	if err != nil {
		return 0, err
	}

	decision, ok := h.calculator.ComputeTimer(count, h.settings.BufferSettings())
	if !ok {
		return h.settings.StaticBufferTimeout(now), nil
	}

	return time.Duration(decision.Minutes) * time.Minute, nil
}

// ticketSnapshot freezes the printable item and order fields at enqueue time.
func ticketSnapshot(item *kitchenitem.Item, parent *order.Order) printjob.TicketSnapshot {
	details := item.Details()

	return printjob.TicketSnapshot{
		ProductName:  item.ProductName(),
		Quantity:     item.Quantity(),
		Notes:        details.Notes,
		Complements:  details.Complements,
		EdgeType:     details.EdgeType,
		Flavors:      details.Flavors,
		CustomerName: parent.CustomerName(),
		Address:      parent.Address(),
		Neighborhood: parent.Neighborhood(),
	}
}
