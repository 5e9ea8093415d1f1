package queries

import (
	"context"

	"expeditor/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetActiveOrderCountQueryHandler counts orders still moving through the
// kitchen or waiting for dispatch.
type GetActiveOrderCountQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrderCountQueryHandler creates a handler for active order counts.
// Requires a GORM database connection for query execution.
func NewGetActiveOrderCountQueryHandler(db *gorm.DB) GetActiveOrderCountQueryHandler {
	return GetActiveOrderCountQueryHandler{db: db}
}

// Handle executes the count. Orders in any status except dispatched are active.
func (h GetActiveOrderCountQueryHandler) Handle(ctx context.Context, query GetActiveOrderCountQuery) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE status != ?
	`, order.Dispatched.String()).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// ActiveOrderCount adapts the handler to the command layer's counter contract.
func (h GetActiveOrderCountQueryHandler) ActiveOrderCount(ctx context.Context) (int, error) {
	return h.Handle(ctx, NewGetActiveOrderCountQuery())
}
