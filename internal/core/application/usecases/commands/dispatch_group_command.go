package commands

import (
	"errors"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/guard"
)

var ErrDispatchGroupCommandIsNotConstructed = errors.New(
	"DispatchGroupCommand must be created via NewDispatchGroupCommand constructor",
)

// DispatchGroupCommand represents a request to send a delivery group out.
// Fired by an administrative action or by the group timeout job; either way
// the group becomes immutable and its member orders are marked dispatched.
type DispatchGroupCommand struct { //nolint:recvcheck //using for validation
	groupID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchGroupCommand creates a command to dispatch a delivery group.
// Validates that the group identifier is well formed.
func NewDispatchGroupCommand(groupID kernel.UUID) (DispatchGroupCommand, error) {
	dispatchCommand := DispatchGroupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := dispatchCommand.setGroupID(groupID); err != nil {
		return DispatchGroupCommand{}, err
	}

	return dispatchCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchGroupCommandIsNotConstructed if validation fails.
func (c DispatchGroupCommand) Validate() error {
	return c.guard.Validate(ErrDispatchGroupCommandIsNotConstructed)
}

// GroupID returns the identifier of the group to dispatch.
func (c DispatchGroupCommand) GroupID() kernel.UUID {
	return c.groupID
}

func (c *DispatchGroupCommand) setGroupID(groupID kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}

	c.groupID = groupID
	return nil
}
