package commands

import (
	"errors"

	"expeditor/internal/pkg/guard"
)

var ErrReleaseBufferedOrdersCommandIsNotConstructed = errors.New(
	"ReleaseBufferedOrdersCommand must be created via NewReleaseBufferedOrdersCommand constructor",
)

// ReleaseBufferedOrdersCommand triggers the release of orders whose buffer
// hold has elapsed, making them eligible for delivery grouping. This is a
// parameterless command fired by the buffer release job.
type ReleaseBufferedOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewReleaseBufferedOrdersCommand creates a command to release elapsed buffer holds.
func NewReleaseBufferedOrdersCommand() ReleaseBufferedOrdersCommand {
	return ReleaseBufferedOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrReleaseBufferedOrdersCommandIsNotConstructed if validation fails.
func (c *ReleaseBufferedOrdersCommand) Validate() error {
	return c.guard.Validate(
		ErrReleaseBufferedOrdersCommandIsNotConstructed,
	)
}
