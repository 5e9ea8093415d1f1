// Package presencerepo persists the ephemeral heartbeat rows behind the
// presence tracker. Rows are overwritten in place, never versioned.
package presencerepo

import (
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/ports"

	"github.com/google/uuid"
)

// PresenceDTO represents the database structure for heartbeat rows. The
// (sector, user) pair is the primary key; each heartbeat replaces the row.
type PresenceDTO struct {
	SectorID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastSeenAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for presence rows.
func (PresenceDTO) TableName() string {
	return "sector_presences"
}

// fromRecord converts a presence record to its database representation.
func fromRecord(record ports.PresenceRecord) PresenceDTO {
	return PresenceDTO{
		SectorID:   record.SectorID.Bytes(),
		UserID:     record.UserID.Bytes(),
		LastSeenAt: record.LastSeenAt,
	}
}

// toRecord converts a database DTO back to a presence record.
func toRecord(dto PresenceDTO) (ports.PresenceRecord, error) {
	sectorID, err := kernel.UUIDFromBytes(dto.SectorID[:])
	if err != nil {
		return ports.PresenceRecord{}, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return ports.PresenceRecord{}, err
	}

	return ports.PresenceRecord{
		SectorID:   sectorID,
		UserID:     userID,
		LastSeenAt: dto.LastSeenAt,
	}, nil
}
