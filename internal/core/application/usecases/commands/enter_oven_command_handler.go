package commands

import (
	"context"
	"time"
)

// EnterOvenCommandHandler processes oven entry requests.
// The caller must hold the item's claim; the bake duration from the dispatch
// settings determines the estimated exit time shown on the kitchen display.
type EnterOvenCommandHandler struct {
	uowFactory ItemUoWFactory
	settings   DispatchSettings
}

// NewEnterOvenCommandHandler creates a handler for oven entry operations.
func NewEnterOvenCommandHandler(uowFactory ItemUoWFactory, settings DispatchSettings) EnterOvenCommandHandler {
	return EnterOvenCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
	}
}

// Handle processes the oven entry command.
// Returns kitchenitem.ErrItemNotClaimed when the operator does not hold the
// claim and errs.ErrConcurrencyConflict when a concurrent actor won the race.
func (h EnterOvenCommandHandler) Handle(ctx context.Context, command EnterOvenCommand) error {
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

	item, err := itemRepo.Get(ctx, command.ItemID())
	if err != nil {
		return err
	}

	expectedStatus := item.Status()
	expectedClaimedBy := item.ClaimedBy()

	if err = item.EnterOven(command.UserID(), time.Now().UTC(), h.settings.BakeDuration()); err != nil {
		return err
	}

	if err = itemRepo.UpdateCAS(ctx, item, expectedStatus, expectedClaimedBy); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
