// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Lat and Lng are both nil for orders ingested without usable coordinates.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerName string
	Address      string
	Neighborhood string
	Lat          *float64
	Lng          *float64
	Status       string     `gorm:"index"`
	GroupID      *uuid.UUID `gorm:"type:uuid;index"`
	BufferUntil  *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var lat, lng *float64
	if dropoff := o.Dropoff(); dropoff != nil {
		latVal, lngVal := dropoff.Lat(), dropoff.Lng()
		lat, lng = &latVal, &lngVal
	}

	var groupID *uuid.UUID
	if id := o.GroupID(); id != nil {
		raw := id.Bytes()
		groupID = &raw
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerName: o.CustomerName(),
		Address:      o.Address(),
		Neighborhood: o.Neighborhood(),
		Lat:          lat,
		Lng:          lng,
		Status:       o.Status().String(),
		GroupID:      groupID,
		BufferUntil:  o.BufferUntil(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var dropoff *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if geoErr != nil {
			return nil, geoErr
		}
		dropoff = &point
	}

	var groupID *kernel.UUID
	if dto.GroupID != nil {
		gID, groupErr := kernel.UUIDFromBytes((*dto.GroupID)[:])
		if groupErr != nil {
			return nil, groupErr
		}
		groupID = &gID
	}

	return order.RestoreOrder(
		id, dto.CustomerName, dto.Address, dto.Neighborhood, dropoff,
		status, groupID, dto.BufferUntil,
	)
}
