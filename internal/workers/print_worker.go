// Package workers contains long-running background consumers driven by the
// realtime feed rather than the cron scheduler.
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/printjob"
	"expeditor/internal/core/ports"
	"expeditor/internal/pkg/errs"
)

// PrintMetrics receives ticket outcome and claim race counts. Implemented by
// the observability package; a nil value disables instrumentation.
type PrintMetrics interface {
	TicketPrinted()
	TicketFailed()
	CASConflict()
}

// PrintWorker drains the print job queue on machines with a configured
// printer. Jobs arrive through the feed's insert events; a startup sweep
// catches jobs enqueued while the worker was offline.
//
// Deduplication is layered: the in-flight set stops the same process from
// printing a job twice when the feed redelivers an event, and the
// Pending-to-Printing claim write stops two worker processes from printing
// the same job.
type PrintWorker struct {
	uowFactory commands.PrintJobUoWFactory
	printer    ports.Printer
	feed       ports.EventFeed
	metrics    PrintMetrics
	logger     *slog.Logger

	mu       sync.Mutex
	inFlight map[kernel.UUID]struct{}
}

// NewPrintWorker creates a print worker. metrics may be nil.
func NewPrintWorker(
	uowFactory commands.PrintJobUoWFactory,
	printer ports.Printer,
	feed ports.EventFeed,
	metrics PrintMetrics,
	logger *slog.Logger,
) *PrintWorker {
	return &PrintWorker{
		uowFactory: uowFactory,
		printer:    printer,
		feed:       feed,
		metrics:    metrics,
		logger:     logger.With("component", "print_worker"),
		inFlight:   make(map[kernel.UUID]struct{}),
	}
}

// Run sweeps pending jobs, then consumes feed events until ctx is canceled.
func (w *PrintWorker) Run(ctx context.Context) error {
	events, err := w.feed.Subscribe(ctx, ports.TablePrintJobs)
	if err != nil {
		return err
	}

	w.sweep(ctx)

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// sweep processes every pending job already in the queue, oldest first.
func (w *PrintWorker) sweep(ctx context.Context) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		w.logger.ErrorContext(ctx, "print sweep failed to begin", "error", err)
		return
	}

	pending, err := uow.PrintJobRepository().GetAllPending(ctx)
	_ = uow.Rollback(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "print sweep failed", "error", err)
		return
	}

	for _, job := range pending {
		go w.process(ctx, job.ID())
	}
}

// handleEvent reacts to a print job insert by processing the new job.
// Requeued jobs arrive the same way, as fresh pending rows.
func (w *PrintWorker) handleEvent(ctx context.Context, event ports.RowEvent) {
	if event.Operation != ports.OpInsert {
		return
	}

	jobID, err := rowID(event.NewRow)
	if err != nil {
		w.logger.WarnContext(ctx, "print job event without usable id", "error", err)
		return
	}

	go w.process(ctx, jobID)
}

// process claims, prints and finalizes one job. Errors are recorded on the
// job itself; a failure never takes the worker down.
func (w *PrintWorker) process(ctx context.Context, jobID kernel.UUID) {
	if !w.acquire(jobID) {
		return
	}
	defer w.release(jobID)

	job, err := w.claim(ctx, jobID)
	if err != nil {
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			// Another worker got there first.
			if w.metrics != nil {
				w.metrics.CASConflict()
			}
			return
		}
		if errors.Is(err, errs.ErrObjectNotFound) {
			return
		}
		w.logger.ErrorContext(ctx, "print job claim failed", "job_id", jobID.String(), "error", err)
		return
	}
	if job == nil {
		return
	}

	printErr := w.printer.Print(ctx, job.Snapshot())

	if err = w.finalize(ctx, job, printErr); err != nil {
		w.logger.ErrorContext(ctx, "print job finalization failed",
			"job_id", jobID.String(), "error", err)
	}
}

// claim moves the job Pending to Printing under this worker's name and
// commits the claim so other workers see it immediately. Returns nil job
// when the stored job is no longer pending.
func (w *PrintWorker) claim(ctx context.Context, jobID kernel.UUID) (*printjob.PrintJob, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PrintJobRepository()

	job, err := repo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status() != printjob.Pending {
		return nil, nil
	}

	if err = job.StartPrinting(w.printer.Name()); err != nil {
		return nil, err
	}

	if err = repo.StartPrintingCAS(ctx, job); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return job, nil
}

// finalize records the print outcome on the claimed job. A failed print is
// terminal; the operator requeues it explicitly after fixing the printer.
func (w *PrintWorker) finalize(ctx context.Context, job *printjob.PrintJob, printErr error) error {
	if printErr != nil {
		w.logger.WarnContext(ctx, "ticket print failed",
			"job_id", job.ID().String(), "printer", w.printer.Name(), "error", printErr)

		if err := job.MarkFailed(printErr.Error()); err != nil {
			return err
		}
		if w.metrics != nil {
			w.metrics.TicketFailed()
		}
	} else {
		if err := job.MarkPrinted(time.Now().UTC()); err != nil {
			return err
		}
		if w.metrics != nil {
			w.metrics.TicketPrinted()
		}
	}

	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PrintJobRepository().Update(ctx, job); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// acquire marks the job as in flight. Reports false when this process is
// already working on it.
func (w *PrintWorker) acquire(jobID kernel.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, busy := w.inFlight[jobID]; busy {
		return false
	}

	w.inFlight[jobID] = struct{}{}
	return true
}

func (w *PrintWorker) release(jobID kernel.UUID) {
	w.mu.Lock()
	delete(w.inFlight, jobID)
	w.mu.Unlock()
}

// rowID extracts the id column from a feed row payload.
func rowID(row json.RawMessage) (kernel.UUID, error) {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(row, &payload); err != nil {
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromString(payload.ID)
}
