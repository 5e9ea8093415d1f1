package ports

import (
	"context"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/printjob"
)

// PrintJobRepository defines the persistence contract for print job aggregates.
type PrintJobRepository interface {
	// Add persists a new job aggregate to storage.
	Add(ctx context.Context, aggregate *printjob.PrintJob) error

	// Get retrieves a job aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if the job does not exist.
	Get(ctx context.Context, id kernel.UUID) (*printjob.PrintJob, error)

	// GetAllPending retrieves pending jobs ordered by creation time, the
	// order the print worker drains them in.
	GetAllPending(ctx context.Context) ([]*printjob.PrintJob, error)

	// StartPrintingCAS persists the Pending to Printing claim only if the
	// stored row is still Pending, making the claim authoritative across
	// worker processes. Losing the race yields errs.ConcurrencyConflictError
	// and the worker skips the job.
	StartPrintingCAS(ctx context.Context, aggregate *printjob.PrintJob) error

	// Update persists the terminal outcome of a claimed job.
	Update(ctx context.Context, aggregate *printjob.PrintJob) error
}
