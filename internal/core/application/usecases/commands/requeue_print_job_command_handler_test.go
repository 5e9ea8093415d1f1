package commands_test

import (
	"context"
	"testing"
	"time"

	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/printjob"
	"expeditor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func failedJob(t *testing.T) *printjob.PrintJob {
	t.Helper()
	snapshot := printjob.TicketSnapshot{ProductName: "Pizza Margherita", Quantity: 1}
	j, err := printjob.RestorePrintJob(
		kernel.NewUUID(), kernel.NewUUID(), snapshot,
		printjob.Failed, "kitchen-01", "printer offline", time.Now().UTC(), nil,
	)
	require.NoError(t, err)
	return j
}

func TestRequeuePrintJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	failed := failedJob(t)
	cmd, _ := commands.NewRequeuePrintJobCommand(failed.ID())

	repo := new(MockPrintJobRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PrintJobRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, failed.ID()).Return(failed, nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*printjob.PrintJob")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPrintJobUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequeuePrintJobCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)

	fresh := repo.Calls[1].Arguments.Get(1).(*printjob.PrintJob)
	assert.Equal(t, printjob.Pending, fresh.Status())
	assert.Equal(t, failed.Snapshot(), fresh.Snapshot())
	assert.False(t, fresh.IsEqual(failed))
	assert.Equal(t, printjob.Failed, failed.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRequeuePrintJobCommandHandler_Handle_NotFailed(t *testing.T) {
	ctx := context.Background()
	snapshot := printjob.TicketSnapshot{ProductName: "Pizza Margherita", Quantity: 1}
	pending, err := printjob.NewPrintJob(kernel.NewUUID(), kernel.NewUUID(), snapshot, time.Now().UTC())
	require.NoError(t, err)
	cmd, _ := commands.NewRequeuePrintJobCommand(pending.ID())

	repo := new(MockPrintJobRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PrintJobRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPrintJobUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequeuePrintJobCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRequeuePrintJobCommandHandler_Handle_JobVanished(t *testing.T) {
	ctx := context.Background()
	jobID := kernel.NewUUID()
	cmd, _ := commands.NewRequeuePrintJobCommand(jobID)

	notFound := errs.NewObjectNotFoundError("print job", jobID.String())

	repo := new(MockPrintJobRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PrintJobRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, jobID).Return(nil, notFound).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPrintJobUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequeuePrintJobCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
