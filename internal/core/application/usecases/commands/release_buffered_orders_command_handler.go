package commands

import (
	"context"
	"errors"
	"time"

	"expeditor/internal/core/domain/model/order"
	"expeditor/internal/pkg/errs"
)

// ReleaseBufferedOrdersCommandHandler moves orders from WaitingBuffer to
// Ready once their hold elapses. A release lost to a concurrent coordinator
// is skipped, not failed; the other process already released the order.
type ReleaseBufferedOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	metrics    ConflictMetrics
}

// NewReleaseBufferedOrdersCommandHandler creates a handler for buffer release
// operations. metrics may be nil.
func NewReleaseBufferedOrdersCommandHandler(uowFactory OrderUoWFactory, metrics ConflictMetrics) ReleaseBufferedOrdersCommandHandler {
	return ReleaseBufferedOrdersCommandHandler{
		uowFactory: uowFactory,
		metrics:    metrics,
	}
}

// Handle processes the release command. Failures are scoped to a single
// order; one bad row never stops the remaining releases.
func (h ReleaseBufferedOrdersCommandHandler) Handle(ctx context.Context, command ReleaseBufferedOrdersCommand) error {
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

	orderRepo := uow.OrderRepository()
	now := time.Now().UTC()

	elapsed, err := orderRepo.GetAllBufferElapsed(ctx, now)
	if err != nil {
		return err
	}

	for _, o := range elapsed {
		if err = o.Release(now); err != nil {
			continue
		}

		err = orderRepo.UpdateCAS(ctx, o, order.WaitingBuffer, nil)
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			if h.metrics != nil {
				h.metrics.CASConflict()
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
