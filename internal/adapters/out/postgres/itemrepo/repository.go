package itemrepo

import (
	"context"
	"errors"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"
	"expeditor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM.
type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormItemRepository creates a new GORM item repository.
func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new item to the database.
func (r *GormItemRepository) Add(ctx context.Context, aggregate *kitchenitem.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an item by ID.
func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*kitchenitem.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves all items belonging to an order.
func (r *GormItemRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*kitchenitem.Item, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	items := make([]*kitchenitem.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// UpdateCAS writes the aggregate's state conditioned on the stored row still
// carrying the expected prior status and claim owner. Zero affected rows mean
// the row vanished or another actor won the race.
func (r *GormItemRepository) UpdateCAS(
	ctx context.Context,
	aggregate *kitchenitem.Item,
	expectedStatus kitchenitem.Status,
	expectedClaimedBy *kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	tx := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ? AND status = ?", dto.ID, expectedStatus.String())
	if expectedClaimedBy != nil {
		tx = tx.Where("claimed_by = ?", expectedClaimedBy.Bytes())
	} else {
		tx = tx.Where("claimed_by IS NULL")
	}

	result := tx.
		Select("status", "claimed_by", "claimed_at", "oven_entry_at", "estimated_exit_at", "ready_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.casFailure(ctx, aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// casFailure distinguishes a vanished row from a lost race.
func (r *GormItemRepository) casFailure(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order item", id.String())
	}

	return errs.NewConcurrencyConflictError("order item", id.String())
}
