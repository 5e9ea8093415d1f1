package commands

import (
	"context"
	"time"

	"expeditor/internal/core/domain/model/kernel"
)

// RequeuePrintJobCommandHandler creates a fresh pending job from a failed
// one's frozen snapshot. The print worker picks the new job up through its
// regular insert event or sweep.
type RequeuePrintJobCommandHandler struct {
	uowFactory PrintJobUoWFactory
}

// NewRequeuePrintJobCommandHandler creates a handler for print job re-queue operations.
func NewRequeuePrintJobCommandHandler(uowFactory PrintJobUoWFactory) RequeuePrintJobCommandHandler {
	return RequeuePrintJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the re-queue command.
// Returns errs.ErrObjectNotFound when the job vanished and a validation error
// when the job is not in failed status.
func (h RequeuePrintJobCommandHandler) Handle(ctx context.Context, command RequeuePrintJobCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	printJobRepo := uow.PrintJobRepository()

	failed, err := printJobRepo.Get(ctx, command.JobID())
	if err != nil {
		return err
	}

	fresh, err := failed.Requeue(kernel.NewUUID(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = printJobRepo.Add(ctx, fresh); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
