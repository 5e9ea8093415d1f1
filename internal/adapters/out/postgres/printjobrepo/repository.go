package printjobrepo

import (
	"context"
	"errors"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/printjob"
	"expeditor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPrintJobRepository implements PrintJobRepository using GORM.
type GormPrintJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPrintJobRepository creates a new GORM print job repository.
func NewGormPrintJobRepository(db *gorm.DB, tracker aggregateTracker) *GormPrintJobRepository {
	return &GormPrintJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new print job to the database.
func (r *GormPrintJobRepository) Add(ctx context.Context, aggregate *printjob.PrintJob) error {
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

// Get retrieves a print job by ID.
func (r *GormPrintJobRepository) Get(ctx context.Context, id kernel.UUID) (*printjob.PrintJob, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PrintJobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("print job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves pending jobs in the order the worker drains them.
func (r *GormPrintJobRepository) GetAllPending(ctx context.Context) ([]*printjob.PrintJob, error) {
	var dtos []PrintJobDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", printjob.Pending.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*printjob.PrintJob, 0, len(dtos))
	for _, dto := range dtos {
		j, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

// StartPrintingCAS persists the Pending to Printing claim conditioned on the
// stored row still being Pending. This makes the worker's claim authoritative
// across processes: two printer-equipped clients racing on one job get
// exactly one winner.
func (r *GormPrintJobRepository) StartPrintingCAS(ctx context.Context, aggregate *printjob.PrintJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&PrintJobDTO{}).
		Where("id = ? AND status = ?", dto.ID, printjob.Pending.String()).
		Select("status", "printer_name").
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

// Update persists the terminal outcome of a claimed job.
func (r *GormPrintJobRepository) Update(ctx context.Context, aggregate *printjob.PrintJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&PrintJobDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "error_message", "printed_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("print job", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// casFailure distinguishes a vanished row from a lost race.
func (r *GormPrintJobRepository) casFailure(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PrintJobDTO{}).
		Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("print job", id.String())
	}

	return errs.NewConcurrencyConflictError("print job", id.String())
}
