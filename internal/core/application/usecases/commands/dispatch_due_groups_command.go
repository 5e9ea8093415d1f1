package commands

import (
	"errors"
	"fmt"
	"time"

	"expeditor/internal/pkg/errs"
	"expeditor/internal/pkg/guard"
)

var ErrDispatchDueGroupsCommandIsNotConstructed = errors.New(
	"DispatchDueGroupsCommand must be created via NewDispatchDueGroupsCommand constructor",
)

// DispatchDueGroupsCommand triggers dispatch of waiting groups older than the
// configured group timeout. Fired periodically by the group timeout job; the
// administrative counterpart is DispatchGroupCommand.
type DispatchDueGroupsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewDispatchDueGroupsCommand creates a command to dispatch groups that have
// waited at least olderThan since creation.
func NewDispatchDueGroupsCommand(olderThan time.Duration) (DispatchDueGroupsCommand, error) {
	dispatchCommand := DispatchDueGroupsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := dispatchCommand.setOlderThan(olderThan); err != nil {
		return DispatchDueGroupsCommand{}, err
	}

	return dispatchCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchDueGroupsCommandIsNotConstructed if validation fails.
func (c DispatchDueGroupsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchDueGroupsCommandIsNotConstructed)
}

// OlderThan returns the minimum age a waiting group must reach before the
// timeout dispatches it.
func (c DispatchDueGroupsCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c *DispatchDueGroupsCommand) setOlderThan(olderThan time.Duration) error {
	if olderThan <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("olderThan is invalid",
			fmt.Errorf("%s is not greater than 0", olderThan))
	}

	c.olderThan = olderThan
	return nil
}
