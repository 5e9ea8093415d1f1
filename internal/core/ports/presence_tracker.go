package ports

import (
	"context"

	"expeditor/internal/core/domain/model/kernel"
)

// PresenceTracker answers "who is online" per kitchen sector. Liveness is
// authoritative through the staleness window, not explicit removal: a
// heartbeat older than the window counts as offline even if the row was never
// removed.
type PresenceTracker interface {
	// Heartbeat records that the user is active in the sector right now.
	Heartbeat(ctx context.Context, sectorID kernel.UUID, userID kernel.UUID) error

	// Remove drops the user's presence. Best-effort; failures are logged and
	// ignored since staleness self-heals.
	Remove(ctx context.Context, sectorID kernel.UUID, userID kernel.UUID) error

	// OnlineOperatorCount returns the number of non-stale operators in the sector.
	OnlineOperatorCount(sectorID kernel.UUID) int

	// IsSectorAvailable reports whether the sector has at least one online operator.
	IsSectorAvailable(sectorID kernel.UUID) bool
}
