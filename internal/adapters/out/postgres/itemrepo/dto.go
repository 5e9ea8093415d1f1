// Package itemrepo provides data transfer objects and mapping functions for
// kitchen item persistence. This package implements the repository pattern for
// the item domain aggregate, handling the conversion between domain entities
// and database representations.
package itemrepo

import (
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"

	"github.com/google/uuid"
)

// ItemDTO represents the database structure for persisting item aggregates.
// Statuses are stored under their wire names so that feed consumers and other
// clients read the same values this core writes.
type ItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	SectorID        uuid.UUID `gorm:"type:uuid;index"`
	ProductName     string
	Quantity        int
	Notes           string
	Complements     string
	EdgeType        string
	Flavors         string
	Status          string     `gorm:"index"`
	ClaimedBy       *uuid.UUID `gorm:"type:uuid"`
	ClaimedAt       *time.Time
	OvenEntryAt     *time.Time
	EstimatedExitAt *time.Time
	ReadyAt         *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an item domain aggregate to its database representation.
func fromDomain(item *kitchenitem.Item) ItemDTO {
	var claimedBy *uuid.UUID
	if id := item.ClaimedBy(); id != nil {
		raw := id.Bytes()
		claimedBy = &raw
	}

	details := item.Details()

	return ItemDTO{
		ID:              item.ID().Bytes(),
		OrderID:         item.OrderID().Bytes(),
		SectorID:        item.SectorID().Bytes(),
		ProductName:     item.ProductName(),
		Quantity:        item.Quantity(),
		Notes:           details.Notes,
		Complements:     details.Complements,
		EdgeType:        details.EdgeType,
		Flavors:         details.Flavors,
		Status:          item.Status().String(),
		ClaimedBy:       claimedBy,
		ClaimedAt:       item.ClaimedAt(),
		OvenEntryAt:     item.OvenEntryAt(),
		EstimatedExitAt: item.EstimatedExitAt(),
		ReadyAt:         item.ReadyAt(),
	}
}

// toDomain converts a database DTO to an item domain aggregate using RestoreItem.
func toDomain(dto ItemDTO) (*kitchenitem.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	sectorID, err := kernel.UUIDFromBytes(dto.SectorID[:])
	if err != nil {
		return nil, err
	}

	status, err := kitchenitem.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var claimedBy *kernel.UUID
	if dto.ClaimedBy != nil {
		operatorID, claimErr := kernel.UUIDFromBytes((*dto.ClaimedBy)[:])
		if claimErr != nil {
			return nil, claimErr
		}
		claimedBy = &operatorID
	}

	details := kitchenitem.Details{
		Notes:       dto.Notes,
		Complements: dto.Complements,
		EdgeType:    dto.EdgeType,
		Flavors:     dto.Flavors,
	}

	return kitchenitem.RestoreItem(
		id, orderID, sectorID, dto.ProductName, dto.Quantity, details,
		status, claimedBy, dto.ClaimedAt, dto.OvenEntryAt, dto.EstimatedExitAt, dto.ReadyAt,
	)
}
