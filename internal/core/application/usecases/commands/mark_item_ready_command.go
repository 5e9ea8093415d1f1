package commands

import (
	"errors"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/guard"
)

var ErrMarkItemReadyCommandIsNotConstructed = errors.New(
	"MarkItemReadyCommand must be created via NewMarkItemReadyCommand constructor",
)

// MarkItemReadyCommand represents an operator's request to finish a claimed
// item. Reaching ready releases the claim, enqueues the kitchen ticket and,
// once every sibling item is ready, puts the parent order on buffer hold.
type MarkItemReadyCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkItemReadyCommand creates a command to mark an item ready.
// Validates that both identifiers are well formed.
func NewMarkItemReadyCommand(itemID kernel.UUID, userID kernel.UUID) (MarkItemReadyCommand, error) {
	readyCommand := MarkItemReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		readyCommand.setItemID(itemID),
		readyCommand.setUserID(userID),
	); err != nil {
		return MarkItemReadyCommand{}, err
	}

	return readyCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkItemReadyCommandIsNotConstructed if validation fails.
func (c MarkItemReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkItemReadyCommandIsNotConstructed)
}

// ItemID returns the identifier of the item to finish.
func (c MarkItemReadyCommand) ItemID() kernel.UUID {
	return c.itemID
}

// UserID returns the identifier of the operator holding the claim.
func (c MarkItemReadyCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *MarkItemReadyCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *MarkItemReadyCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
