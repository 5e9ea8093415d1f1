package ports

import (
	"context"
	"encoding/json"
)

// Row change operations delivered by the event feed.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// Feed table names this core subscribes to.
const (
	TableOrderItems      = "order_items"
	TablePrintJobs       = "print_jobs"
	TableSectorPresences = "sector_presences"
)

// RowEvent is one row change delivered by the feed. Delivery is at-least-once
// and unordered across distinct rows; all fields of a single event are
// consistent as of emission. Handlers must be idempotent.
type RowEvent struct {
	Table     string          `json:"table"`
	Operation string          `json:"operation"`
	NewRow    json.RawMessage `json:"new,omitempty"`
	OldRow    json.RawMessage `json:"old,omitempty"`
}

// EventFeed is a subscription to row changes on the shared store.
type EventFeed interface {
	// Subscribe opens the feed for the given tables. The returned channel is
	// closed when the context is canceled or the feed shuts down; events
	// arriving while the subscriber is slow may be dropped by the feed, which
	// the periodic refresh jobs compensate for.
	Subscribe(ctx context.Context, tables ...string) (<-chan RowEvent, error)
}
