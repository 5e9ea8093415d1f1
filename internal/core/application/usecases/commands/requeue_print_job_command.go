package commands

import (
	"errors"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/guard"
)

var ErrRequeuePrintJobCommandIsNotConstructed = errors.New(
	"RequeuePrintJobCommand must be created via NewRequeuePrintJobCommand constructor",
)

// RequeuePrintJobCommand represents an operator's request to retry a failed
// ticket. A fresh pending job is created from the failed job's snapshot; the
// failed job itself stays failed.
type RequeuePrintJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequeuePrintJobCommand creates a command to re-queue a failed print job.
// Validates that the job identifier is well formed.
func NewRequeuePrintJobCommand(jobID kernel.UUID) (RequeuePrintJobCommand, error) {
	requeueCommand := RequeuePrintJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := requeueCommand.setJobID(jobID); err != nil {
		return RequeuePrintJobCommand{}, err
	}

	return requeueCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRequeuePrintJobCommandIsNotConstructed if validation fails.
func (c RequeuePrintJobCommand) Validate() error {
	return c.guard.Validate(ErrRequeuePrintJobCommandIsNotConstructed)
}

// JobID returns the identifier of the failed job to re-queue.
func (c RequeuePrintJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *RequeuePrintJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
