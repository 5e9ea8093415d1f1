package deliverygroup

import (
	"errors"
	"fmt"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/errs"
)

var (
	// ErrGroupIsNotConstructed is returned when a Group instance was not
	// created through the NewGroup or RestoreGroup factory methods.
	ErrGroupIsNotConstructed = errors.New("Group must be created via NewGroup constructor")

	// ErrGroupFull is returned when joining a group that already reached
	// its member cap.
	ErrGroupFull = errors.New("delivery group is full")

	// ErrGroupDispatched is returned when mutating a dispatched group.
	ErrGroupDispatched = errors.New("delivery group is already dispatched")
)

// Group represents a dispatch batch of nearby orders.
//
// Group maintains these invariants:
//   - orderCount never exceeds maxOrders
//   - center is the running mean of the members' coordinates; this is an
//     approximation of the geometric median, accepted because drift is
//     bounded by the small member cap
//   - a dispatched group never changes
type Group struct {
	id         kernel.UUID
	center     kernel.GeoPoint
	orderCount int
	maxOrders  int
	status     Status
	createdAt  time.Time

	isConstructed bool
}

// NewGroup creates an empty Waiting group centered at the coordinates of the
// order that opened it. The opener still has to Join the group.
func NewGroup(id kernel.UUID, center kernel.GeoPoint, maxOrders int, createdAt time.Time) (*Group, error) {
	g := &Group{
		status:        Waiting,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		g.setID(id),
		g.setCenter(center),
		g.setMaxOrders(maxOrders),
	); err != nil {
		return nil, err
	}

	return g, nil
}

// RestoreGroup reconstructs a group from persistence.
func RestoreGroup(
	id kernel.UUID,
	center kernel.GeoPoint,
	orderCount int,
	maxOrders int,
	status Status,
	createdAt time.Time,
) (*Group, error) {
	g, err := NewGroup(id, center, maxOrders, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if orderCount < 0 || orderCount > maxOrders {
		return nil, errs.NewValueIsOutOfRangeError("orderCount", orderCount, 0, maxOrders)
	}

	g.orderCount = orderCount
	g.status = status

	return g, nil
}

// Validate ensures the Group was created through a constructor.
func (g *Group) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrGroupIsNotConstructed
	}

	return nil
}

// IsEqual compares two groups by their unique identifiers.
func (g *Group) IsEqual(other *Group) bool {
	return other != nil && g.id.IsEqual(other.id)
}

// ID returns the group's unique identifier.
func (g *Group) ID() kernel.UUID {
	return g.id
}

// Center returns the running-mean centroid of the members' coordinates.
func (g *Group) Center() kernel.GeoPoint {
	return g.center
}

// OrderCount returns the current number of members.
func (g *Group) OrderCount() int {
	return g.orderCount
}

// MaxOrders returns the member cap.
func (g *Group) MaxOrders() int {
	return g.maxOrders
}

// Status returns the current lifecycle status.
func (g *Group) Status() Status {
	return g.status
}

// CreatedAt returns when the group was opened.
func (g *Group) CreatedAt() time.Time {
	return g.createdAt
}

// HasCapacity reports whether the group can accept another member.
func (g *Group) HasCapacity() bool {
	return g.status == Waiting && g.orderCount < g.maxOrders
}

// IsFull reports whether the group reached its member cap.
func (g *Group) IsFull() bool {
	return g.orderCount >= g.maxOrders
}

// WithinRadiusKm reports whether a dropoff point lies within radiusKm of the
// group's centroid.
func (g *Group) WithinRadiusKm(point kernel.GeoPoint, radiusKm float64) (bool, error) {
	return g.center.WithinRadiusKm(point, radiusKm)
}

// Join adds one member at the given dropoff point, recomputing the centroid
// as the running mean of member coordinates and incrementing the count.
func (g *Group) Join(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	if g.status != Waiting {
		return ErrGroupDispatched
	}

	if g.orderCount >= g.maxOrders {
		return ErrGroupFull
	}

	count := float64(g.orderCount)
	newLat := (g.center.Lat()*count + point.Lat()) / (count + 1)
	newLng := (g.center.Lng()*count + point.Lng()) / (count + 1)

	newCenter, err := kernel.NewGeoPoint(newLat, newLng)
	if err != nil {
		return err
	}

	g.center = newCenter
	g.orderCount++
	return nil
}

// Dispatch finalizes the group. Dispatched groups are immutable; the call
// fails on an already dispatched group.
func (g *Group) Dispatch() error {
	newStatus, err := g.status.Dispatch()
	if err != nil {
		return err
	}

	g.status = newStatus
	return nil
}

// setID validates and sets the group's unique identifier.
func (g *Group) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	g.id = id
	return nil
}

// setCenter validates and sets the initial centroid.
func (g *Group) setCenter(center kernel.GeoPoint) error {
	if err := center.Validate(); err != nil {
		return err
	}
	g.center = center
	return nil
}

// setMaxOrders validates and sets the member cap.
func (g *Group) setMaxOrders(maxOrders int) error {
	if maxOrders <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxOrders is invalid",
			fmt.Errorf("%d is not greater than 0", maxOrders))
	}
	g.maxOrders = maxOrders
	return nil
}
