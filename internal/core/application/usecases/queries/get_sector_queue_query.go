package queries

import (
	"errors"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/guard"
)

var ErrGetSectorQueueQueryIsNotConstructed = errors.New(
	"GetSectorQueueQuery must be created via NewGetSectorQueueQuery constructor",
)

// GetSectorQueueQuery retrieves the work queue of one kitchen sector: every
// item not yet ready, ordered by creation, for the sector display.
type GetSectorQueueQuery struct { //nolint:recvcheck //using for validation
	sectorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSectorQueueQuery creates a query for a sector's work queue.
// Validates that the sector identifier is well formed.
func NewGetSectorQueueQuery(sectorID kernel.UUID) (GetSectorQueueQuery, error) {
	q := GetSectorQueueQuery{guard: guard.NewConstructorGuard()}

	if err := q.setSectorID(sectorID); err != nil {
		return GetSectorQueueQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetSectorQueueQueryIsNotConstructed if validation fails.
func (q GetSectorQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetSectorQueueQueryIsNotConstructed)
}

// SectorID returns the identifier of the sector being displayed.
func (q GetSectorQueueQuery) SectorID() kernel.UUID {
	return q.sectorID
}

func (q *GetSectorQueueQuery) setSectorID(sectorID kernel.UUID) error {
	if err := sectorID.Validate(); err != nil {
		return err
	}

	q.sectorID = sectorID
	return nil
}

// GetSectorQueueQueryResponse is one row of a sector's work queue.
type GetSectorQueueQueryResponse struct {
	ID              kernel.UUID
	ProductName     string
	Quantity        int
	Status          string
	ClaimedBy       *kernel.UUID
	EstimatedExitAt *time.Time
}
