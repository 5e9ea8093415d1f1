package queries

import (
	"errors"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/guard"
)

var ErrGetPendingPrintJobsQueryIsNotConstructed = errors.New(
	"GetPendingPrintJobsQuery must be created via NewGetPendingPrintJobsQuery constructor",
)

// GetPendingPrintJobsQuery retrieves the jobs waiting for a print worker,
// oldest first. Used by the operator panel and for worker monitoring.
type GetPendingPrintJobsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingPrintJobsQuery creates a query for the pending print backlog.
func NewGetPendingPrintJobsQuery() GetPendingPrintJobsQuery {
	return GetPendingPrintJobsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingPrintJobsQueryIsNotConstructed if validation fails.
func (q GetPendingPrintJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingPrintJobsQueryIsNotConstructed)
}

// GetPendingPrintJobsQueryResponse is one pending ticket in the backlog.
type GetPendingPrintJobsQueryResponse struct {
	ID          kernel.UUID
	OrderItemID kernel.UUID
	ProductName string
	CreatedAt   time.Time
}
