package commands

import (
	"errors"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/guard"
)

var ErrEnterOvenCommandIsNotConstructed = errors.New(
	"EnterOvenCommand must be created via NewEnterOvenCommand constructor",
)

// EnterOvenCommand represents an operator's request to move a claimed item
// into the oven.
type EnterOvenCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEnterOvenCommand creates a command to move an item into the oven.
// Validates that both identifiers are well formed.
func NewEnterOvenCommand(itemID kernel.UUID, userID kernel.UUID) (EnterOvenCommand, error) {
	ovenCommand := EnterOvenCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ovenCommand.setItemID(itemID),
		ovenCommand.setUserID(userID),
	); err != nil {
		return EnterOvenCommand{}, err
	}

	return ovenCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrEnterOvenCommandIsNotConstructed if validation fails.
func (c EnterOvenCommand) Validate() error {
	return c.guard.Validate(ErrEnterOvenCommandIsNotConstructed)
}

// ItemID returns the identifier of the item entering the oven.
func (c EnterOvenCommand) ItemID() kernel.UUID {
	return c.itemID
}

// UserID returns the identifier of the operator holding the claim.
func (c EnterOvenCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *EnterOvenCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *EnterOvenCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
