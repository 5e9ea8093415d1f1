package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"expeditor/internal/core/domain/model/deliverygroup"
	"expeditor/internal/core/domain/model/order"
	"expeditor/internal/core/ports"
	"expeditor/internal/pkg/errs"
)

// DispatchDueGroupsCommandHandler dispatches every waiting group that has
// exceeded the group timeout and carries at least one order. Each group is
// processed independently: a conflict on one (a member joining at the same
// moment) skips that group for this tick without aborting the rest.
type DispatchDueGroupsCommandHandler struct {
	uowFactory GroupUoWFactory
	metrics    ConflictMetrics
	logger     *slog.Logger
}

// NewDispatchDueGroupsCommandHandler creates a handler for timeout-driven
// dispatch. metrics may be nil.
func NewDispatchDueGroupsCommandHandler(
	uowFactory GroupUoWFactory,
	metrics ConflictMetrics,
	logger *slog.Logger,
) DispatchDueGroupsCommandHandler {
	return DispatchDueGroupsCommandHandler{
		uowFactory: uowFactory,
		metrics:    metrics,
		logger:     logger.With("component", "group_timeout"),
	}
}

// Handle processes the timeout dispatch command.
func (h DispatchDueGroupsCommandHandler) Handle(ctx context.Context, command DispatchDueGroupsCommand) error {
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

	waiting, err := groupRepo.GetAllWaiting(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-command.OlderThan())

	for _, group := range waiting {
		if group.CreatedAt().After(cutoff) || group.OrderCount() == 0 {
			continue
		}

		if err = h.dispatch(ctx, groupRepo, orderRepo, group); err != nil {
			if errors.Is(err, errs.ErrConcurrencyConflict) {
				if h.metrics != nil {
					h.metrics.CASConflict()
				}
				h.logger.InfoContext(ctx, "group changed during timeout dispatch, skipping",
					"group_id", group.ID().String())
				continue
			}
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// dispatch finalizes one due group and marks its members dispatched.
func (h DispatchDueGroupsCommandHandler) dispatch(
	ctx context.Context,
	groupRepo ports.DeliveryGroupRepository,
	orderRepo ports.OrderRepository,
	group *deliverygroup.Group,
) error {
	expectedCount := group.OrderCount()

	if err := group.Dispatch(); err != nil {
		return err
	}

	if err := groupRepo.UpdateCAS(ctx, group, expectedCount); err != nil {
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

	return nil
}
