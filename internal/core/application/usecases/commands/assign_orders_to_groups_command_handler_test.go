package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/core/domain/model/deliverygroup"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/order"
	"expeditor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func releasedOrder(t *testing.T) *order.Order {
	t.Helper()
	dropoff, err := kernel.NewGeoPoint(-23.5505, -46.6333)
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), "Ana", "Av. Paulista, 1000", "Bela Vista",
		&dropoff, order.Ready, nil, nil)
	require.NoError(t, err)
	return o
}

func groupingSettings() stubSettings {
	return stubSettings{radiusKm: 2, maxGroupSize: 3}
}

// assignmentUoW wires the shared transaction expectations: every phase of
// the handler begins and rolls back its own unit of work.
func assignmentUoW(orderRepo *MockOrderRepository, groupRepo *MockGroupRepository) (*MockUoW, *MockGroupUoWFactory) {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryGroupRepository").Return(groupRepo)

	factory := new(MockGroupUoWFactory)
	factory.On("Create").Return(uow)

	return uow, factory
}

func TestAssignOrdersToGroupsCommandHandler_Handle(t *testing.T) {
	logger := slog.Default()

	t.Run("opens a new group when none is open", func(t *testing.T) {
		ctx := context.Background()
		o := releasedOrder(t)

		orderRepo := new(MockOrderRepository)
		groupRepo := new(MockGroupRepository)
		uow, factory := assignmentUoW(orderRepo, groupRepo)
		uow.On("Commit", ctx).Return(nil).Once()

		orderRepo.On("GetAllReadyUngrouped", mock.Anything).Return([]*order.Order{o}, nil).Once()
		groupRepo.On("GetAllWaiting", mock.Anything).Return([]*deliverygroup.Group{}, nil).Once()
		groupRepo.On("Add", mock.Anything, mock.AnythingOfType("*deliverygroup.Group")).Return(nil).Once()
		orderRepo.On("UpdateCAS", mock.Anything, o, order.Ready, (*kernel.UUID)(nil)).Return(nil).Once()

		h := commands.NewAssignOrdersToGroupsCommandHandler(factory, groupingSettings(), nil, logger)
		cmd := commands.NewAssignOrdersToGroupsCommand()
		err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, o.GroupID())
		created := groupRepo.Calls[1].Arguments.Get(1).(*deliverygroup.Group)
		assert.True(t, o.GroupID().IsEqual(created.ID()))
		assert.Equal(t, 1, created.OrderCount())
		groupRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("joins an open group within radius", func(t *testing.T) {
		ctx := context.Background()
		o := releasedOrder(t)
		open, err := deliverygroup.NewGroup(kernel.NewUUID(), *o.Dropoff(), 3, time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, open.Join(*o.Dropoff()))

		orderRepo := new(MockOrderRepository)
		groupRepo := new(MockGroupRepository)
		uow, factory := assignmentUoW(orderRepo, groupRepo)
		uow.On("Commit", ctx).Return(nil).Once()

		orderRepo.On("GetAllReadyUngrouped", mock.Anything).Return([]*order.Order{o}, nil).Once()
		groupRepo.On("GetAllWaiting", mock.Anything).Return([]*deliverygroup.Group{open}, nil).Once()
		// The group held one member before this join.
		groupRepo.On("UpdateCAS", mock.Anything, open, 1).Return(nil).Once()
		orderRepo.On("UpdateCAS", mock.Anything, o, order.Ready, (*kernel.UUID)(nil)).Return(nil).Once()

		h := commands.NewAssignOrdersToGroupsCommandHandler(factory, groupingSettings(), nil, logger)
		cmd := commands.NewAssignOrdersToGroupsCommand()
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, open.OrderCount())
		require.NotNil(t, o.GroupID())
		assert.True(t, o.GroupID().IsEqual(open.ID()))
	})

	t.Run("order without coordinates is skipped and surfaced", func(t *testing.T) {
		ctx := context.Background()
		o, err := order.RestoreOrder(kernel.NewUUID(), "Ana", "Av. Paulista, 1000", "Bela Vista",
			nil, order.Ready, nil, nil)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		groupRepo := new(MockGroupRepository)
		uow, factory := assignmentUoW(orderRepo, groupRepo)

		orderRepo.On("GetAllReadyUngrouped", mock.Anything).Return([]*order.Order{o}, nil).Once()
		groupRepo.On("GetAllWaiting", mock.Anything).Return([]*deliverygroup.Group{}, nil).Once()

		h := commands.NewAssignOrdersToGroupsCommandHandler(factory, groupingSettings(), nil, logger)
		cmd := commands.NewAssignOrdersToGroupsCommand()
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Nil(t, o.GroupID())
		groupRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("order grouped by a concurrent coordinator is left alone", func(t *testing.T) {
		ctx := context.Background()
		o := releasedOrder(t)

		// The winner's view of the same order, already grouped.
		winnerGroup := kernel.NewUUID()
		grouped, err := order.RestoreOrder(o.ID(), "Ana", "Av. Paulista, 1000", "Bela Vista",
			o.Dropoff(), order.Ready, &winnerGroup, nil)
		require.NoError(t, err)

		conflict := errs.NewConcurrencyConflictError("order", o.ID().String())

		orderRepo := new(MockOrderRepository)
		groupRepo := new(MockGroupRepository)
		uow, factory := assignmentUoW(orderRepo, groupRepo)

		orderRepo.On("GetAllReadyUngrouped", mock.Anything).Return([]*order.Order{o}, nil).Once()
		groupRepo.On("GetAllWaiting", mock.Anything).Return([]*deliverygroup.Group{}, nil).Once()
		groupRepo.On("Add", mock.Anything, mock.AnythingOfType("*deliverygroup.Group")).Return(nil).Once()
		// The stored row is no longer ungrouped, so the claim write loses.
		orderRepo.On("UpdateCAS", mock.Anything, o, order.Ready, (*kernel.UUID)(nil)).
			Return(conflict).Once()
		orderRepo.On("Get", mock.Anything, o.ID()).Return(grouped, nil).Once()

		metrics := new(stubConflictMetrics)
		h := commands.NewAssignOrdersToGroupsCommandHandler(factory, groupingSettings(), metrics, logger)
		cmd := commands.NewAssignOrdersToGroupsCommand()
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		// The losing transaction never commits, so its group write (and the
		// phantom member count it would carry) rolls back.
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		assert.Equal(t, 1, metrics.conflicts)
		orderRepo.AssertExpectations(t)
		groupRepo.AssertExpectations(t)
	})

	t.Run("group write conflict retries once with fresh groups", func(t *testing.T) {
		ctx := context.Background()
		o := releasedOrder(t)
		open, err := deliverygroup.NewGroup(kernel.NewUUID(), *o.Dropoff(), 3, time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, open.Join(*o.Dropoff()))

		conflict := errs.NewConcurrencyConflictError("delivery group", open.ID().String())

		// The store's view of the order after the lost attempt rolls back.
		fresh, err := order.RestoreOrder(o.ID(), "Ana", "Av. Paulista, 1000", "Bela Vista",
			o.Dropoff(), order.Ready, nil, nil)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		groupRepo := new(MockGroupRepository)
		uow, factory := assignmentUoW(orderRepo, groupRepo)
		uow.On("Commit", ctx).Return(nil).Once()

		orderRepo.On("GetAllReadyUngrouped", mock.Anything).Return([]*order.Order{o}, nil).Once()
		groupRepo.On("GetAllWaiting", mock.Anything).
			Return([]*deliverygroup.Group{open}, nil).Once()
		groupRepo.On("UpdateCAS", mock.Anything, open, 1).Return(conflict).Once()
		orderRepo.On("Get", mock.Anything, o.ID()).Return(fresh, nil).Once()

		// Retry finds no open group left and opens a new one.
		groupRepo.On("GetAllWaiting", mock.Anything).
			Return([]*deliverygroup.Group{}, nil).Once()
		groupRepo.On("Add", mock.Anything, mock.AnythingOfType("*deliverygroup.Group")).Return(nil).Once()
		orderRepo.On("UpdateCAS", mock.Anything, fresh, order.Ready, (*kernel.UUID)(nil)).Return(nil).Once()

		metrics := new(stubConflictMetrics)
		h := commands.NewAssignOrdersToGroupsCommandHandler(factory, groupingSettings(), metrics, logger)
		cmd := commands.NewAssignOrdersToGroupsCommand()
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, fresh.GroupID())
		assert.Equal(t, 1, metrics.conflicts)
		groupRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})
}
