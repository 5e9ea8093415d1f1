package commands

import (
	"context"

	"expeditor/internal/core/domain/model/order"
)

// DispatchGroupCommandHandler finalizes a delivery group and marks its member
// orders dispatched in one transaction. The member-count expectation on the
// group write keeps a late joiner from slipping into a group that is leaving.
type DispatchGroupCommandHandler struct {
	uowFactory GroupUoWFactory
}

// NewDispatchGroupCommandHandler creates a handler for group dispatch operations.
func NewDispatchGroupCommandHandler(uowFactory GroupUoWFactory) DispatchGroupCommandHandler {
	return DispatchGroupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch command.
// Returns errs.ErrConcurrencyConflict when a member joined concurrently; the
// caller re-issues the dispatch after re-reading the group.
func (h DispatchGroupCommandHandler) Handle(ctx context.Context, command DispatchGroupCommand) error {
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

	groupRepo := uow.DeliveryGroupRepository()
	orderRepo := uow.OrderRepository()

	group, err := groupRepo.Get(ctx, command.GroupID())
	if err != nil {
		return err
	}

	expectedCount := group.OrderCount()

	if err = group.Dispatch(); err != nil {
		return err
	}

	if err = groupRepo.UpdateCAS(ctx, group, expectedCount); err != nil {
		return err
	}

	members, err := orderRepo.GetAllInGroup(ctx, group.ID())
	if err != nil {
		return err
	}

	groupID := group.ID()
	for _, member := range members {
		if err = member.MarkDispatched(); err != nil {
			return err
		}

		if err = orderRepo.UpdateCAS(ctx, member, order.Ready, &groupID); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
