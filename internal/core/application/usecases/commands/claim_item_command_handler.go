package commands

import (
	"context"
	"time"

	"expeditor/internal/core/ports"
	"expeditor/internal/pkg/errs"
)

// ClaimItemCommandHandler processes item claim requests.
//
// A claim succeeds only when the item's sector has at least one online
// operator at claim time and the item is unclaimed or already claimed by the
// same operator. The conditional write guarantees exactly one winner between
// two operators racing on the same item; the loser receives a conflict, not a
// generic write failure.
type ClaimItemCommandHandler struct {
	uowFactory ItemUoWFactory
	presence   ports.PresenceTracker
}

// NewClaimItemCommandHandler creates a handler for item claim operations.
func NewClaimItemCommandHandler(uowFactory ItemUoWFactory, presence ports.PresenceTracker) ClaimItemCommandHandler {
	return ClaimItemCommandHandler{
		uowFactory: uowFactory,
		presence:   presence,
	}
}

// Handle processes the claim command.
// Returns errs.ErrPermissionDenied when the sector is unattended,
// kitchenitem.ErrItemAlreadyClaimed when another operator holds the claim and
// errs.ErrConcurrencyConflict when a concurrent actor won the write race.
func (h ClaimItemCommandHandler) Handle(ctx context.Context, command ClaimItemCommand) error {
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

	if !h.presence.IsSectorAvailable(item.SectorID()) {
		return errs.NewPermissionDeniedError("sector has no online operator")
	}

	expectedStatus := item.Status()
	expectedClaimedBy := item.ClaimedBy()

	if err = item.Claim(command.UserID(), time.Now().UTC()); err != nil {
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
