package grouprepo

import (
	"context"
	"errors"

	"expeditor/internal/core/domain/model/deliverygroup"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormGroupRepository implements DeliveryGroupRepository using GORM.
type GormGroupRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormGroupRepository creates a new GORM group repository.
func NewGormGroupRepository(db *gorm.DB, tracker aggregateTracker) *GormGroupRepository {
	return &GormGroupRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new group to the database.
func (r *GormGroupRepository) Add(ctx context.Context, aggregate *deliverygroup.Group) error {
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

// Get retrieves a group by ID.
func (r *GormGroupRepository) Get(ctx context.Context, id kernel.UUID) (*deliverygroup.Group, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GroupDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery group", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllWaiting retrieves open groups in ascending creation order.
func (r *GormGroupRepository) GetAllWaiting(ctx context.Context) ([]*deliverygroup.Group, error) {
	var dtos []GroupDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", deliverygroup.Waiting.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	groups := make([]*deliverygroup.Group, 0, len(dtos))
	for _, dto := range dtos {
		g, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		groups = append(groups, g)
	}

	return groups, nil
}

// UpdateCAS writes the aggregate's state conditioned on the stored row still
// carrying the expected prior member count while the group is open. This is
// the precondition that resolves concurrent join and dispatch races.
func (r *GormGroupRepository) UpdateCAS(
	ctx context.Context,
	aggregate *deliverygroup.Group,
	expectedOrderCount int,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&GroupDTO{}).
		Where("id = ? AND status = ? AND order_count = ?",
			dto.ID, deliverygroup.Waiting.String(), expectedOrderCount).
		Select("center_lat", "center_lng", "order_count", "status").
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
func (r *GormGroupRepository) casFailure(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&GroupDTO{}).
		Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("delivery group", id.String())
	}

	return errs.NewConcurrencyConflictError("delivery group", id.String())
}
