package queries

import (
	"context"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSectorQueueQueryHandler reads the unfinished items of one sector for the
// kitchen display.
type GetSectorQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetSectorQueueQueryHandler creates a handler for sector queue queries.
// Requires a GORM database connection for query execution.
func NewGetSectorQueueQueryHandler(db *gorm.DB) GetSectorQueueQueryHandler {
	return GetSectorQueueQueryHandler{db: db}
}

// Handle executes the query. Ready items are excluded; they left the queue.
// Results are sorted by creation time so the oldest work shows first.
func (h GetSectorQueueQueryHandler) Handle(
	ctx context.Context,
	query GetSectorQueueQuery,
) ([]GetSectorQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items := make([]GetSectorQueueQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_name,
			quantity,
			status,
			claimed_by,
			estimated_exit_at
		FROM order_items
		WHERE sector_id = ? AND status != ?
		ORDER BY created_at
	`, query.SectorID().String(), kitchenitem.Ready.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var itemResp GetSectorQueueQueryResponse
		var id uuid.UUID
		var claimedBy *uuid.UUID
		var estimatedExitAt *time.Time

		err = rows.Scan(
			&id,
			&itemResp.ProductName,
			&itemResp.Quantity,
			&itemResp.Status,
			&claimedBy,
			&estimatedExitAt,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		itemResp.ID = itemID

		if claimedBy != nil {
			operatorID, opErr := kernel.UUIDFromBytes(claimedBy[:])
			if opErr != nil {
				return nil, opErr
			}
			itemResp.ClaimedBy = &operatorID
		}
		itemResp.EstimatedExitAt = estimatedExitAt

		items = append(items, itemResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
