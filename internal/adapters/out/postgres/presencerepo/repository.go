package presencerepo

import (
	"context"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPresenceRepository implements PresenceRepository using GORM.
type GormPresenceRepository struct {
	db *gorm.DB
}

// NewGormPresenceRepository creates a new GORM presence repository.
func NewGormPresenceRepository(db *gorm.DB) *GormPresenceRepository {
	return &GormPresenceRepository{db: db}
}

// Upsert records a heartbeat, replacing any previous row for the pair.
func (r *GormPresenceRepository) Upsert(ctx context.Context, record ports.PresenceRecord) error {
	if err := record.SectorID.Validate(); err != nil {
		return err
	}
	if err := record.UserID.Validate(); err != nil {
		return err
	}

	dto := fromRecord(record)

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sector_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_seen_at"}),
		}).
		Create(&dto).Error
}

// Remove deletes the row for the pair. A missing row is not an error.
func (r *GormPresenceRepository) Remove(ctx context.Context, sectorID kernel.UUID, userID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Where("sector_id = ? AND user_id = ?", sectorID.Bytes(), userID.Bytes()).
		Delete(&PresenceDTO{}).Error
}

// GetAllSince retrieves every row with a heartbeat at or after cutoff.
func (r *GormPresenceRepository) GetAllSince(ctx context.Context, cutoff time.Time) ([]ports.PresenceRecord, error) {
	var dtos []PresenceDTO
	err := r.db.WithContext(ctx).
		Where("last_seen_at >= ?", cutoff).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]ports.PresenceRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toRecord(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}
