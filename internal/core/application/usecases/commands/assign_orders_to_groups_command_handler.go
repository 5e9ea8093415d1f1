package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/order"
	"expeditor/internal/core/domain/services"
	"expeditor/internal/pkg/errs"
)

// AssignOrdersToGroupsCommandHandler places released orders into delivery
// groups using the first-fit scan of the group assigner.
//
// Each assignment runs in its own transaction: the group write and the order
// write commit together or not at all, so a lost race never leaves a group
// counting a member it did not get. The order write expects the stored row to
// still be ungrouped, which is what detects a concurrent coordinator. The
// loser re-fetches and retries the order once, then leaves it for the next
// run. Orders without dropoff coordinates are logged for manual handling and
// never auto-grouped.
type AssignOrdersToGroupsCommandHandler struct {
	uowFactory GroupUoWFactory
	settings   DispatchSettings
	assigner   services.GroupAssigner
	metrics    ConflictMetrics
	logger     *slog.Logger
}

// NewAssignOrdersToGroupsCommandHandler creates a handler for grouping
// operations. metrics may be nil.
func NewAssignOrdersToGroupsCommandHandler(
	uowFactory GroupUoWFactory,
	settings DispatchSettings,
	metrics ConflictMetrics,
	logger *slog.Logger,
) AssignOrdersToGroupsCommandHandler {
	return AssignOrdersToGroupsCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		assigner:   services.NewGroupAssigner(),
		metrics:    metrics,
		logger:     logger.With("component", "group_assignment"),
	}
}

// Handle processes the grouping command. Failures are scoped to a single
// order; one bad row never stops the remaining assignments.
func (h AssignOrdersToGroupsCommandHandler) Handle(ctx context.Context, command AssignOrdersToGroupsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	ungrouped, err := h.fetchUngrouped(ctx)
	if err != nil {
		return err
	}

	for _, o := range ungrouped {
		if err = h.assignWithRetry(ctx, o); err != nil {
			if errors.Is(err, order.ErrOrderNotGroupable) {
				h.logger.Warn("order has no coordinates, manual grouping required",
					"order_id", o.ID().String())
				continue
			}
			return err
		}
	}

	return nil
}

func (h AssignOrdersToGroupsCommandHandler) fetchUngrouped(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllReadyUngrouped(ctx)
}

// assignWithRetry runs one assignment attempt and, after losing the race,
// re-fetches the order and tries once more. An order another coordinator
// already grouped is left alone.
func (h AssignOrdersToGroupsCommandHandler) assignWithRetry(ctx context.Context, o *order.Order) error {
	err := h.assign(ctx, o)
	if !errors.Is(err, errs.ErrConcurrencyConflict) {
		return err
	}

	h.recordConflict()
	h.logger.Info("group assignment conflict, retrying once", "order_id", o.ID().String())

	fresh, err := h.refetch(ctx, o.ID())
	if err != nil {
		return err
	}
	if fresh.GroupID() != nil {
		return nil
	}

	err = h.assign(ctx, fresh)
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		h.recordConflict()
		h.logger.Info("group assignment conflict persists, leaving for next run",
			"order_id", o.ID().String())
		return nil
	}
	return err
}

// assign commits one order into a group. The transaction spans both writes;
// a conflict on either rolls back the other.
func (h AssignOrdersToGroupsCommandHandler) assign(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	groupRepo := uow.DeliveryGroupRepository()

	openGroups, err := groupRepo.GetAllWaiting(ctx)
	if err != nil {
		return err
	}

	joined, created, err := h.assigner.Assign(
		o, openGroups, h.settings.GroupingRadiusKm(), h.settings.MaxGroupSize(), time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if created {
		err = groupRepo.Add(ctx, joined)
	} else {
		// Join already advanced the in-memory count; the stored row must
		// still carry the prior one.
		err = groupRepo.UpdateCAS(ctx, joined, joined.OrderCount()-1)
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateCAS(ctx, o, order.Ready, nil); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h AssignOrdersToGroupsCommandHandler) refetch(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, id)
}

func (h AssignOrdersToGroupsCommandHandler) recordConflict() {
	if h.metrics != nil {
		h.metrics.CASConflict()
	}
}
