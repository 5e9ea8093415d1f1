// Package presence tracks which operators are online per kitchen sector.
//
// The tracker layers an in-memory view over the shared heartbeat rows. Local
// heartbeats update both; remote changes arrive through the realtime feed and
// a periodic reconciliation, so every process converges on the same answer.
// Liveness is authoritative through the staleness window: a heartbeat older
// than the window counts as offline even if the row was never removed.
package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/ports"
)

const (
	// StalenessWindow is how long a heartbeat keeps an operator online.
	StalenessWindow = 30 * time.Second

	// feedDebounce coalesces bursts of presence row events into one
	// reconciliation.
	feedDebounce = 100 * time.Millisecond
)

type presenceKey struct {
	sectorID kernel.UUID
	userID   kernel.UUID
}

// Tracker implements PresenceTracker backed by a PresenceRepository.
type Tracker struct {
	repo   ports.PresenceRepository
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	lastSeen map[presenceKey]time.Time

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// NewTracker creates a presence tracker. The in-memory view starts empty and
// fills on the first heartbeat, feed event or reconciliation.
func NewTracker(repo ports.PresenceRepository, logger *slog.Logger) *Tracker {
	return &Tracker{
		repo:     repo,
		logger:   logger.With("component", "presence"),
		now:      time.Now,
		lastSeen: make(map[presenceKey]time.Time),
	}
}

// Heartbeat records that the user is active in the sector right now, in the
// local view and in the shared rows.
func (t *Tracker) Heartbeat(ctx context.Context, sectorID kernel.UUID, userID kernel.UUID) error {
	if err := sectorID.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return err
	}

	now := t.now().UTC()

	t.mu.Lock()
	t.lastSeen[presenceKey{sectorID: sectorID, userID: userID}] = now
	t.mu.Unlock()

	return t.repo.Upsert(ctx, ports.PresenceRecord{
		SectorID:   sectorID,
		UserID:     userID,
		LastSeenAt: now,
	})
}

// Remove drops the user's presence. The shared-row delete is best-effort:
// a failure is logged and swallowed since staleness self-heals.
func (t *Tracker) Remove(ctx context.Context, sectorID kernel.UUID, userID kernel.UUID) error {
	if err := sectorID.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	delete(t.lastSeen, presenceKey{sectorID: sectorID, userID: userID})
	t.mu.Unlock()

	if err := t.repo.Remove(ctx, sectorID, userID); err != nil {
		t.logger.Warn("presence row removal failed",
			"sector_id", sectorID.String(), "user_id", userID.String(), "error", err)
	}

	return nil
}

// OnlineOperatorCount returns the number of operators in the sector with a
// heartbeat inside the staleness window.
func (t *Tracker) OnlineOperatorCount(sectorID kernel.UUID) int {
	cutoff := t.now().UTC().Add(-StalenessWindow)

	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for key, seen := range t.lastSeen {
		if key.sectorID.IsEqual(sectorID) && !seen.Before(cutoff) {
			count++
		}
	}

	return count
}

// SectorCounts returns the number of online operators per sector, for the
// stats gauges.
func (t *Tracker) SectorCounts() map[kernel.UUID]int {
	cutoff := t.now().UTC().Add(-StalenessWindow)

	t.mu.RLock()
	defer t.mu.RUnlock()

	counts := make(map[kernel.UUID]int)
	for key, seen := range t.lastSeen {
		if !seen.Before(cutoff) {
			counts[key.sectorID]++
		}
	}

	return counts
}

// IsSectorAvailable reports whether the sector has at least one online operator.
func (t *Tracker) IsSectorAvailable(sectorID kernel.UUID) bool {
	return t.OnlineOperatorCount(sectorID) > 0
}

// Reconcile rebuilds the in-memory view from the non-stale shared rows,
// keeping any local heartbeat fresher than its stored counterpart. The local
// entries cover heartbeats whose row upsert has not committed yet, so an
// operator never flickers offline between their heartbeat and the store
// catching up. Called by the periodic refresh job and, debounced, on feed
// events.
func (t *Tracker) Reconcile(ctx context.Context) error {
	cutoff := t.now().UTC().Add(-StalenessWindow)

	records, err := t.repo.GetAllSince(ctx, cutoff)
	if err != nil {
		return err
	}

	fresh := make(map[presenceKey]time.Time, len(records))
	for _, record := range records {
		fresh[presenceKey{sectorID: record.SectorID, userID: record.UserID}] = record.LastSeenAt
	}

	t.mu.Lock()
	for key, seen := range t.lastSeen {
		if seen.Before(cutoff) {
			continue
		}
		if stored, ok := fresh[key]; !ok || seen.After(stored) {
			fresh[key] = seen
		}
	}
	t.lastSeen = fresh
	t.mu.Unlock()

	return nil
}

// Run consumes presence row events from the feed until ctx is canceled.
// Each event reschedules a single debounced reconciliation, so a burst of
// heartbeats from many operators costs one round trip.
func (t *Tracker) Run(ctx context.Context, feed ports.EventFeed) error {
	events, err := feed.Subscribe(ctx, ports.TableSectorPresences)
	if err != nil {
		return err
	}

	for {
		select {
		case _, ok := <-events:
			if !ok {
				return nil
			}
			t.scheduleReconcile(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (t *Tracker) scheduleReconcile(ctx context.Context) {
	t.debounceMu.Lock()
	defer t.debounceMu.Unlock()

	if t.debounce != nil {
		t.debounce.Stop()
	}

	t.debounce = time.AfterFunc(feedDebounce, func() {
		if ctx.Err() != nil {
			return
		}
		if err := t.Reconcile(ctx); err != nil {
			t.logger.Warn("presence reconciliation failed", "error", err)
		}
	})
}
