package ports

import (
	"context"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInGroup retrieves every order assigned to a delivery group.
	GetAllInGroup(ctx context.Context, groupID kernel.UUID) ([]*order.Order, error)

	// GetAllBufferElapsed retrieves orders in WaitingBuffer status whose
	// bufferUntil lies at or before now, ordered by bufferUntil.
	GetAllBufferElapsed(ctx context.Context, now time.Time) ([]*order.Order, error)

	// GetAllReadyUngrouped retrieves orders in Ready status without a group,
	// ordered by creation. Orders without dropoff coordinates are included;
	// the grouping service surfaces them instead of grouping them.
	GetAllReadyUngrouped(ctx context.Context) ([]*order.Order, error)

	// UpdateCAS persists the aggregate's current state only if the stored row
	// still carries the expected prior status and group assignment. A nil
	// expectedGroupID requires the stored row to be ungrouped, which makes
	// first assignment race-safe even though it leaves the status unchanged.
	// A row that no longer matches yields errs.ConcurrencyConflictError.
	UpdateCAS(
		ctx context.Context,
		aggregate *order.Order,
		expectedStatus order.Status,
		expectedGroupID *kernel.UUID,
	) error
}
