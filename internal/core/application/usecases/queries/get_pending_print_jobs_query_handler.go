package queries

import (
	"context"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/printjob"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingPrintJobsQueryHandler reads the pending ticket backlog.
type GetPendingPrintJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingPrintJobsQueryHandler creates a handler for print backlog queries.
// Requires a GORM database connection for query execution.
func NewGetPendingPrintJobsQueryHandler(db *gorm.DB) GetPendingPrintJobsQueryHandler {
	return GetPendingPrintJobsQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by creation time, the order
// the print worker drains them in.
func (h GetPendingPrintJobsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingPrintJobsQuery,
) ([]GetPendingPrintJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]GetPendingPrintJobsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_item_id,
			product_name,
			created_at
		FROM print_jobs
		WHERE status = ?
		ORDER BY created_at
	`, printjob.Pending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobResp GetPendingPrintJobsQueryResponse
		var id, orderItemID uuid.UUID

		err = rows.Scan(
			&id,
			&orderItemID,
			&jobResp.ProductName,
			&jobResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		jobID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		jobResp.ID = jobID

		itemID, idErr := kernel.UUIDFromBytes(orderItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		jobResp.OrderItemID = itemID

		jobs = append(jobs, jobResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
