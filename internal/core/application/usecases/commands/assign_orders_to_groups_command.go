package commands

import (
	"errors"

	"expeditor/internal/pkg/guard"
)

var ErrAssignOrdersToGroupsCommandIsNotConstructed = errors.New(
	"AssignOrdersToGroupsCommand must be created via NewAssignOrdersToGroupsCommand constructor",
)

// AssignOrdersToGroupsCommand triggers the grouping of released orders into
// geographic delivery batches. This is a parameterless command fired by the
// grouping job.
type AssignOrdersToGroupsCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignOrdersToGroupsCommand creates a command to trigger delivery grouping.
func NewAssignOrdersToGroupsCommand() AssignOrdersToGroupsCommand {
	return AssignOrdersToGroupsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignOrdersToGroupsCommandIsNotConstructed if validation fails.
func (c *AssignOrdersToGroupsCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignOrdersToGroupsCommandIsNotConstructed,
	)
}
