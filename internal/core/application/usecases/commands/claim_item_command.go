package commands

import (
	"errors"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/guard"
)

var ErrClaimItemCommandIsNotConstructed = errors.New(
	"ClaimItemCommand must be created via NewClaimItemCommand constructor",
)

// ClaimItemCommand represents an operator's request for exclusive ownership of
// a kitchen item. Claiming is required before the item can advance.
//
// Example:
//
//	cmd, err := NewClaimItemCommand(itemID, userID)
//	if err != nil {
//	    return fmt.Errorf("invalid claim request: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type ClaimItemCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimItemCommand creates a command to claim an item for an operator.
// Validates that both identifiers are well formed.
func NewClaimItemCommand(itemID kernel.UUID, userID kernel.UUID) (ClaimItemCommand, error) {
	claimCommand := ClaimItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		claimCommand.setItemID(itemID),
		claimCommand.setUserID(userID),
	); err != nil {
		return ClaimItemCommand{}, err
	}

	return claimCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimItemCommandIsNotConstructed if validation fails.
func (c ClaimItemCommand) Validate() error {
	return c.guard.Validate(ErrClaimItemCommandIsNotConstructed)
}

// ItemID returns the identifier of the item to claim.
func (c ClaimItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// UserID returns the identifier of the claiming operator.
func (c ClaimItemCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *ClaimItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *ClaimItemCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
