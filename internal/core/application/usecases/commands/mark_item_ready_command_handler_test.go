package commands_test

import (
	"context"
	"testing"
	"time"

	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"
	"expeditor/internal/core/domain/model/order"
	"expeditor/internal/core/domain/model/printjob"
	"expeditor/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ovenItemClaimedBy(t *testing.T, orderID kernel.UUID, userID kernel.UUID) *kitchenitem.Item {
	t.Helper()
	claimedAt := time.Now().UTC().Add(-10 * time.Minute)
	ovenEntryAt := time.Now().UTC().Add(-5 * time.Minute)
	exitAt := ovenEntryAt.Add(8 * time.Minute)

	item, err := kitchenitem.RestoreItem(
		kernel.NewUUID(), orderID, kernel.NewUUID(),
		"Pizza Calabresa", 1, kitchenitem.Details{Flavors: "calabresa"},
		kitchenitem.InOven, &userID, &claimedAt, &ovenEntryAt, &exitAt, nil,
	)
	require.NoError(t, err)
	return item
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	dropoff, err := kernel.NewGeoPoint(-23.5505, -46.6333)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "Ana", "Av. Paulista, 1000", "Bela Vista", &dropoff)
	require.NoError(t, err)
	return o
}

func markReadySettings() stubSettings {
	return stubSettings{
		buffer: services.BufferSettings{
			Enabled:              true,
			LowMaxOrders:         5,
			LowTimerMinutes:      5,
			MediumMaxOrders:      15,
			MediumTimerMinutes:   12,
			HighTimerMinutes:     20,
			MaxBufferTimeMinutes: 30,
		},
		staticTimeout: 10 * time.Minute,
		bakeDuration:  8 * time.Minute,
	}
}

func TestMarkItemReadyCommandHandler_Handle_LastItemHoldsOrder(t *testing.T) {
	ctx := context.Background()
	parent := pendingOrder(t)
	userID := kernel.NewUUID()
	item := ovenItemClaimedBy(t, parent.ID(), userID)
	cmd, _ := commands.NewMarkItemReadyCommand(item.ID(), userID)

	itemRepo := new(MockItemRepository)
	orderRepo := new(MockOrderRepository)
	printJobRepo := new(MockPrintJobRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ItemRepository").Return(itemRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PrintJobRepository").Return(printJobRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	itemRepo.On("Get", mock.Anything, item.ID()).Return(item, nil).Once()
	itemRepo.On("UpdateCAS", mock.Anything, item, kitchenitem.InOven, &userID).Return(nil).Once()
	itemRepo.On("GetAllByOrder", mock.Anything, parent.ID()).
		Return([]*kitchenitem.Item{item}, nil).Once()

	orderRepo.On("Get", mock.Anything, parent.ID()).Return(parent, nil).Once()
	orderRepo.On("UpdateCAS", mock.Anything, parent, order.Pending, (*kernel.UUID)(nil)).Return(nil).Once()

	printJobRepo.On("Add", mock.Anything, mock.AnythingOfType("*printjob.PrintJob")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkItemReadyCommandHandler(factory, markReadySettings(), stubCounter{count: 3})
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kitchenitem.Ready, item.Status())
	assert.Nil(t, item.ClaimedBy())
	assert.NotNil(t, item.ReadyAt())

	assert.Equal(t, order.WaitingBuffer, parent.Status())
	require.NotNil(t, parent.BufferUntil())
	// 3 active orders fall in the low band (5 minutes).
	assert.WithinDuration(t, time.Now().UTC().Add(5*time.Minute), *parent.BufferUntil(), 5*time.Second)

	enqueued := printJobRepo.Calls[0].Arguments.Get(1).(*printjob.PrintJob)
	assert.True(t, enqueued.OrderItemID().IsEqual(item.ID()))
	assert.Equal(t, "Pizza Calabresa", enqueued.Snapshot().ProductName)
	assert.Equal(t, "Ana", enqueued.Snapshot().CustomerName)

	itemRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	printJobRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestMarkItemReadyCommandHandler_Handle_SiblingsStillCooking(t *testing.T) {
	ctx := context.Background()
	parent := pendingOrder(t)
	userID := kernel.NewUUID()
	item := ovenItemClaimedBy(t, parent.ID(), userID)
	sibling := pendingItem(t)
	cmd, _ := commands.NewMarkItemReadyCommand(item.ID(), userID)

	itemRepo := new(MockItemRepository)
	orderRepo := new(MockOrderRepository)
	printJobRepo := new(MockPrintJobRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ItemRepository").Return(itemRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PrintJobRepository").Return(printJobRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	itemRepo.On("Get", mock.Anything, item.ID()).Return(item, nil).Once()
	itemRepo.On("UpdateCAS", mock.Anything, item, kitchenitem.InOven, &userID).Return(nil).Once()
	itemRepo.On("GetAllByOrder", mock.Anything, parent.ID()).
		Return([]*kitchenitem.Item{item, sibling}, nil).Once()

	orderRepo.On("Get", mock.Anything, parent.ID()).Return(parent, nil).Once()

	printJobRepo.On("Add", mock.Anything, mock.AnythingOfType("*printjob.PrintJob")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkItemReadyCommandHandler(factory, markReadySettings(), stubCounter{count: 3})
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, parent.Status())
	orderRepo.AssertNotCalled(t, "UpdateCAS", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkItemReadyCommandHandler_Handle_NotClaimed(t *testing.T) {
	ctx := context.Background()
	parent := pendingOrder(t)
	item := ovenItemClaimedBy(t, parent.ID(), kernel.NewUUID())
	otherUser := kernel.NewUUID()
	cmd, _ := commands.NewMarkItemReadyCommand(item.ID(), otherUser)

	itemRepo := new(MockItemRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ItemRepository").Return(itemRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	itemRepo.On("Get", mock.Anything, item.ID()).Return(item, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkItemReadyCommandHandler(factory, markReadySettings(), stubCounter{count: 3})
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, kitchenitem.ErrItemNotClaimed)
	itemRepo.AssertNotCalled(t, "UpdateCAS", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkItemReadyCommandHandler_Handle_StaticFallback(t *testing.T) {
	ctx := context.Background()
	parent := pendingOrder(t)
	userID := kernel.NewUUID()
	item := ovenItemClaimedBy(t, parent.ID(), userID)
	cmd, _ := commands.NewMarkItemReadyCommand(item.ID(), userID)

	settings := markReadySettings()
	settings.buffer.Enabled = false

	itemRepo := new(MockItemRepository)
	orderRepo := new(MockOrderRepository)
	printJobRepo := new(MockPrintJobRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ItemRepository").Return(itemRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PrintJobRepository").Return(printJobRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	itemRepo.On("Get", mock.Anything, item.ID()).Return(item, nil).Once()
	itemRepo.On("UpdateCAS", mock.Anything, item, kitchenitem.InOven, &userID).Return(nil).Once()
	itemRepo.On("GetAllByOrder", mock.Anything, parent.ID()).
		Return([]*kitchenitem.Item{item}, nil).Once()

	orderRepo.On("Get", mock.Anything, parent.ID()).Return(parent, nil).Once()
	orderRepo.On("UpdateCAS", mock.Anything, parent, order.Pending, (*kernel.UUID)(nil)).Return(nil).Once()

	printJobRepo.On("Add", mock.Anything, mock.AnythingOfType("*printjob.PrintJob")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkItemReadyCommandHandler(factory, settings, stubCounter{count: 3})
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, parent.BufferUntil())
	assert.WithinDuration(t, time.Now().UTC().Add(10*time.Minute), *parent.BufferUntil(), 5*time.Second)
}
