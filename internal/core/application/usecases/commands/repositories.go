// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"expeditor/internal/core/domain/services"
	"expeditor/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ItemRepoFactory provides access to the item repository within a transaction.
	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// GroupRepoFactory provides access to the group repository within a transaction.
	GroupRepoFactory interface {
		DeliveryGroupRepository() ports.DeliveryGroupRepository
	}

	// PrintJobRepoFactory provides access to the print job repository within a transaction.
	PrintJobRepoFactory interface {
		PrintJobRepository() ports.PrintJobRepository
	}

	// ItemUoW manages transactions for item-only operations.
	ItemUoW interface {
		TxManager
		ItemRepoFactory
	}

	// ItemUoWFactory creates new item unit of work instances.
	ItemUoWFactory interface {
		Create() ItemUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// GroupUoW manages transactions across group and order aggregates.
	// Used by grouping and dispatch, which always touch both.
	GroupUoW interface {
		TxManager
		GroupRepoFactory
		OrderRepoFactory
	}

	// GroupUoWFactory creates new group unit of work instances.
	GroupUoWFactory interface {
		Create() GroupUoW
	}

	// PrintJobUoW manages transactions for print job operations.
	PrintJobUoW interface {
		TxManager
		PrintJobRepoFactory
	}

	// PrintJobUoWFactory creates new print job unit of work instances.
	PrintJobUoWFactory interface {
		Create() PrintJobUoW
	}

	// UoW manages transactions across item, order and print job aggregates.
	// Used by MarkItemReady, which advances the item, enqueues the ticket and
	// may put the parent order on buffer hold in one transaction.
	UoW interface {
		TxManager
		ItemRepoFactory
		OrderRepoFactory
		PrintJobRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// DispatchSettings supplies the operator-managed configuration the command
// handlers read: buffer bands, static fallback, bake duration and grouping
// parameters. Read-only to this package.
type DispatchSettings interface {
	// BufferSettings returns the dynamic buffer band configuration.
	BufferSettings() services.BufferSettings

	// StaticBufferTimeout returns the per-day fallback buffer hold used when
	// the dynamic bands are disabled.
	StaticBufferTimeout(now time.Time) time.Duration

	// BakeDuration returns the configured oven time for estimated exit.
	BakeDuration() time.Duration

	// GroupingRadiusKm returns the maximum distance between a dropoff point
	// and a group centroid.
	GroupingRadiusKm() float64

	// MaxGroupSize returns the delivery group member cap.
	MaxGroupSize() int
}

// ConflictMetrics records optimistic concurrency losses the batch handlers
// swallow, so the lost races stay visible. A nil value disables recording.
type ConflictMetrics interface {
	CASConflict()
}

// ActiveOrderCounter supplies the current active-order volume, the input of
// the dynamic buffer calculator.
type ActiveOrderCounter interface {
	ActiveOrderCount(ctx context.Context) (int, error)
}
