package commands_test

import (
	"context"
	"testing"
	"time"

	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"
	"expeditor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingItem(t *testing.T) *kitchenitem.Item {
	t.Helper()
	item, err := kitchenitem.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Pizza Margherita", 1, kitchenitem.Details{},
	)
	require.NoError(t, err)
	return item
}

func TestClaimItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	item := pendingItem(t)
	userID := kernel.NewUUID()
	cmd, _ := commands.NewClaimItemCommand(item.ID(), userID)

	repo := new(MockItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, item.ID()).Return(item, nil).Once(),
		repo.On("UpdateCAS", mock.Anything, item, kitchenitem.Pending, (*kernel.UUID)(nil)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockItemUoWFactory)
	factory.On("Create").Return(uow).Once()

	presence := new(MockPresenceTracker)
	presence.On("IsSectorAvailable", item.SectorID()).Return(true).Once()

	h := commands.NewClaimItemCommandHandler(factory, presence)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kitchenitem.InPrep, item.Status())
	require.NotNil(t, item.ClaimedBy())
	assert.True(t, item.ClaimedBy().IsEqual(userID))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	presence.AssertExpectations(t)
}

func TestClaimItemCommandHandler_Handle_SectorUnattended(t *testing.T) {
	ctx := context.Background()
	item := pendingItem(t)
	cmd, _ := commands.NewClaimItemCommand(item.ID(), kernel.NewUUID())

	repo := new(MockItemRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ItemRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, item.ID()).Return(item, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockItemUoWFactory)
	factory.On("Create").Return(uow).Once()

	presence := new(MockPresenceTracker)
	presence.On("IsSectorAvailable", item.SectorID()).Return(false).Once()

	h := commands.NewClaimItemCommandHandler(factory, presence)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, kitchenitem.Pending, item.Status())
	repo.AssertNotCalled(t, "UpdateCAS", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimItemCommandHandler_Handle_AlreadyClaimedByOther(t *testing.T) {
	ctx := context.Background()
	item := pendingItem(t)
	require.NoError(t, item.Claim(kernel.NewUUID(), time.Now().UTC()))
	cmd, _ := commands.NewClaimItemCommand(item.ID(), kernel.NewUUID())

	repo := new(MockItemRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ItemRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, item.ID()).Return(item, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockItemUoWFactory)
	factory.On("Create").Return(uow).Once()

	presence := new(MockPresenceTracker)
	presence.On("IsSectorAvailable", item.SectorID()).Return(true).Once()

	h := commands.NewClaimItemCommandHandler(factory, presence)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, kitchenitem.ErrItemAlreadyClaimed)
}

func TestClaimItemCommandHandler_Handle_ConflictLoser(t *testing.T) {
	ctx := context.Background()
	item := pendingItem(t)
	cmd, _ := commands.NewClaimItemCommand(item.ID(), kernel.NewUUID())

	conflict := errs.NewConcurrencyConflictError("order item", item.ID().String())

	repo := new(MockItemRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ItemRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, item.ID()).Return(item, nil).Once()
	repo.On("UpdateCAS", mock.Anything, item, kitchenitem.Pending, (*kernel.UUID)(nil)).Return(conflict).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockItemUoWFactory)
	factory.On("Create").Return(uow).Once()

	presence := new(MockPresenceTracker)
	presence.On("IsSectorAvailable", item.SectorID()).Return(true).Once()

	h := commands.NewClaimItemCommandHandler(factory, presence)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestClaimItemCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	cmd := commands.ClaimItemCommand{}

	factory := new(MockItemUoWFactory)
	presence := new(MockPresenceTracker)

	h := commands.NewClaimItemCommandHandler(factory, presence)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrClaimItemCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
