package commands_test

import (
	"context"
	"time"

	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/core/domain/model/deliverygroup"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"
	"expeditor/internal/core/domain/model/order"
	"expeditor/internal/core/domain/model/printjob"
	"expeditor/internal/core/domain/services"
	"expeditor/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Add(ctx context.Context, item *kitchenitem.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*kitchenitem.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchenitem.Item), args.Error(1)
}

func (m *MockItemRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*kitchenitem.Item, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kitchenitem.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateCAS(
	ctx context.Context,
	item *kitchenitem.Item,
	expectedStatus kitchenitem.Status,
	expectedClaimedBy *kernel.UUID,
) error {
	args := m.Called(ctx, item, expectedStatus, expectedClaimedBy)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInGroup(ctx context.Context, groupID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllBufferElapsed(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllReadyUngrouped(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateCAS(
	ctx context.Context,
	o *order.Order,
	expectedStatus order.Status,
	expectedGroupID *kernel.UUID,
) error {
	args := m.Called(ctx, o, expectedStatus, expectedGroupID)
	return args.Error(0)
}

type MockGroupRepository struct{ mock.Mock }

func (m *MockGroupRepository) Add(ctx context.Context, g *deliverygroup.Group) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupRepository) Get(ctx context.Context, id kernel.UUID) (*deliverygroup.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deliverygroup.Group), args.Error(1)
}

func (m *MockGroupRepository) GetAllWaiting(ctx context.Context) ([]*deliverygroup.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*deliverygroup.Group), args.Error(1)
}

func (m *MockGroupRepository) UpdateCAS(ctx context.Context, g *deliverygroup.Group, expectedOrderCount int) error {
	args := m.Called(ctx, g, expectedOrderCount)
	return args.Error(0)
}

type MockPrintJobRepository struct{ mock.Mock }

func (m *MockPrintJobRepository) Add(ctx context.Context, j *printjob.PrintJob) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockPrintJobRepository) Get(ctx context.Context, id kernel.UUID) (*printjob.PrintJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printjob.PrintJob), args.Error(1)
}

func (m *MockPrintJobRepository) GetAllPending(ctx context.Context) ([]*printjob.PrintJob, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*printjob.PrintJob), args.Error(1)
}

func (m *MockPrintJobRepository) StartPrintingCAS(ctx context.Context, j *printjob.PrintJob) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockPrintJobRepository) Update(ctx context.Context, j *printjob.PrintJob) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

// MockUoW satisfies every UoW shape the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryGroupRepository() ports.DeliveryGroupRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryGroupRepository)
}

func (m *MockUoW) PrintJobRepository() ports.PrintJobRepository {
	args := m.Called()
	return args.Get(0).(ports.PrintJobRepository)
}

type MockItemUoWFactory struct{ mock.Mock }

func (m *MockItemUoWFactory) Create() commands.ItemUoW {
	args := m.Called()
	return args.Get(0).(commands.ItemUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockGroupUoWFactory struct{ mock.Mock }

func (m *MockGroupUoWFactory) Create() commands.GroupUoW {
	args := m.Called()
	return args.Get(0).(commands.GroupUoW)
}

type MockPrintJobUoWFactory struct{ mock.Mock }

func (m *MockPrintJobUoWFactory) Create() commands.PrintJobUoW {
	args := m.Called()
	return args.Get(0).(commands.PrintJobUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPresenceTracker struct{ mock.Mock }

func (m *MockPresenceTracker) Heartbeat(ctx context.Context, sectorID kernel.UUID, userID kernel.UUID) error {
	args := m.Called(ctx, sectorID, userID)
	return args.Error(0)
}

func (m *MockPresenceTracker) Remove(ctx context.Context, sectorID kernel.UUID, userID kernel.UUID) error {
	args := m.Called(ctx, sectorID, userID)
	return args.Error(0)
}

func (m *MockPresenceTracker) OnlineOperatorCount(sectorID kernel.UUID) int {
	args := m.Called(sectorID)
	return args.Int(0)
}

func (m *MockPresenceTracker) IsSectorAvailable(sectorID kernel.UUID) bool {
	args := m.Called(sectorID)
	return args.Bool(0)
}

// stubSettings is a fixed DispatchSettings for handler tests.
type stubSettings struct {
	buffer        services.BufferSettings
	staticTimeout time.Duration
	bakeDuration  time.Duration
	radiusKm      float64
	maxGroupSize  int
}

func (s stubSettings) BufferSettings() services.BufferSettings { return s.buffer }

func (s stubSettings) StaticBufferTimeout(_ time.Time) time.Duration { return s.staticTimeout }

func (s stubSettings) BakeDuration() time.Duration { return s.bakeDuration }

func (s stubSettings) GroupingRadiusKm() float64 { return s.radiusKm }

func (s stubSettings) MaxGroupSize() int { return s.maxGroupSize }

// stubCounter is a fixed ActiveOrderCounter for handler tests.
type stubCounter struct{ count int }

func (s stubCounter) ActiveOrderCount(_ context.Context) (int, error) { return s.count, nil }

// stubConflictMetrics counts CASConflict calls.
type stubConflictMetrics struct{ conflicts int }

func (s *stubConflictMetrics) CASConflict() { s.conflicts++ }
