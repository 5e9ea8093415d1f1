// Package queries contains read-only operations over the shared store.
// Implements the Query side of the CQRS architecture: raw SQL projections
// that bypass the aggregates for display and monitoring purposes.
package queries

import (
	"errors"

	"expeditor/internal/pkg/guard"
)

var ErrGetActiveOrderCountQueryIsNotConstructed = errors.New(
	"GetActiveOrderCountQuery must be created via NewGetActiveOrderCountQuery constructor",
)

// GetActiveOrderCountQuery retrieves the number of orders not yet dispatched.
// The count feeds the dynamic buffer calculator and the stats gauge.
type GetActiveOrderCountQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrderCountQuery creates a query for the active order volume.
func NewGetActiveOrderCountQuery() GetActiveOrderCountQuery {
	return GetActiveOrderCountQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrderCountQueryIsNotConstructed if validation fails.
func (q GetActiveOrderCountQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderCountQueryIsNotConstructed)
}
