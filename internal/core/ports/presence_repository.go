package ports

import (
	"context"
	"time"

	"expeditor/internal/core/domain/model/kernel"
)

// PresenceRecord is one ephemeral (sector, user) heartbeat row. Rows are
// overwritten in place and considered stale after the staleness window even
// if never explicitly removed.
type PresenceRecord struct {
	SectorID   kernel.UUID
	UserID     kernel.UUID
	LastSeenAt time.Time
}

// PresenceRepository defines the persistence contract for the shared heartbeat
// rows backing the presence tracker.
type PresenceRepository interface {
	// Upsert records a heartbeat, overwriting any previous row for the same
	// (sector, user) pair.
	Upsert(ctx context.Context, record PresenceRecord) error

	// Remove deletes the row for the pair. Best-effort; absence of the row
	// is not an error.
	Remove(ctx context.Context, sectorID kernel.UUID, userID kernel.UUID) error

	// GetAllSince retrieves every row with a heartbeat at or after cutoff,
	// the reconciliation source for the in-memory tracker.
	GetAllSince(ctx context.Context, cutoff time.Time) ([]PresenceRecord, error)
}
