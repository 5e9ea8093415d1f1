package ports

import (
	"context"

	"expeditor/internal/core/domain/model/printjob"
)

// Printer is the physical (or logging) ticket printer a worker drives. Print
// failures are recorded on the job, never retried by the worker.
type Printer interface {
	// Name identifies this printer on printed jobs.
	Name() string

	// Print renders and prints the frozen snapshot of a job.
	Print(ctx context.Context, snapshot printjob.TicketSnapshot) error
}

// TicketFormatter renders a snapshot into the text block sent to the printer.
type TicketFormatter interface {
	Format(snapshot printjob.TicketSnapshot) string
}
