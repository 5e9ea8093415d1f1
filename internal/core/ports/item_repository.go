// Package ports defines repository and gateway interfaces for the kitchen
// dispatch domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"
)

// ItemRepository defines the persistence contract for kitchen item aggregates.
//
// Items are created by the order ingestion collaborator and never deleted by
// this core; all status progression goes through conditional writes so that
// two actors racing on the same item have exactly one winner.
type ItemRepository interface {
	// Add persists a new item aggregate to storage.
	Add(ctx context.Context, aggregate *kitchenitem.Item) error

	// Get retrieves an item aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if the item does not exist.
	Get(ctx context.Context, id kernel.UUID) (*kitchenitem.Item, error)

	// GetAllByOrder retrieves every item belonging to an order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*kitchenitem.Item, error)

	// UpdateCAS persists the aggregate's current state only if the stored row
	// still carries the expected prior status and, when expectedClaimedBy is
	// non-nil, is still claimed by that actor. A row that no longer matches
	// yields errs.ConcurrencyConflictError; the caller re-fetches and decides
	// whether to retry or abandon.
	UpdateCAS(
		ctx context.Context,
		aggregate *kitchenitem.Item,
		expectedStatus kitchenitem.Status,
		expectedClaimedBy *kernel.UUID,
	) error
}
