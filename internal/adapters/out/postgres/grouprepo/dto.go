// Package grouprepo provides data transfer objects and mapping functions for
// delivery group persistence.
package grouprepo

import (
	"time"

	"expeditor/internal/core/domain/model/deliverygroup"
	"expeditor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// GroupDTO represents the database structure for persisting group aggregates.
type GroupDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CenterLat  float64
	CenterLng  float64
	OrderCount int
	MaxOrders  int
	Status     string    `gorm:"index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for group entities.
func (GroupDTO) TableName() string {
	return "delivery_groups"
}

// fromDomain converts a group domain aggregate to its database representation.
func fromDomain(g *deliverygroup.Group) GroupDTO {
	return GroupDTO{
		ID:         g.ID().Bytes(),
		CenterLat:  g.Center().Lat(),
		CenterLng:  g.Center().Lng(),
		OrderCount: g.OrderCount(),
		MaxOrders:  g.MaxOrders(),
		Status:     g.Status().String(),
		CreatedAt:  g.CreatedAt(),
	}
}

// toDomain converts a database DTO to a group domain aggregate using RestoreGroup.
func toDomain(dto GroupDTO) (*deliverygroup.Group, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	center, err := kernel.NewGeoPoint(dto.CenterLat, dto.CenterLng)
	if err != nil {
		return nil, err
	}

	status, err := deliverygroup.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return deliverygroup.RestoreGroup(id, center, dto.OrderCount, dto.MaxOrders, status, dto.CreatedAt)
}
