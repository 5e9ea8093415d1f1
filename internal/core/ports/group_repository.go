package ports

import (
	"context"

	"expeditor/internal/core/domain/model/deliverygroup"
	"expeditor/internal/core/domain/model/kernel"
)

// DeliveryGroupRepository defines the persistence contract for delivery group
// aggregates.
type DeliveryGroupRepository interface {
	// Add persists a new group aggregate to storage.
	Add(ctx context.Context, aggregate *deliverygroup.Group) error

	// Get retrieves a group aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if the group does not exist.
	Get(ctx context.Context, id kernel.UUID) (*deliverygroup.Group, error)

	// GetAllWaiting retrieves open groups ordered by ascending creation time,
	// the scan order of the group assigner.
	GetAllWaiting(ctx context.Context) ([]*deliverygroup.Group, error)

	// UpdateCAS persists the aggregate's current state only if the stored row
	// still carries the expected prior member count. Losing the race yields
	// errs.ConcurrencyConflictError; the assignment handler re-fetches the
	// open groups and retries once.
	UpdateCAS(ctx context.Context, aggregate *deliverygroup.Group, expectedOrderCount int) error
}
