package services

import (
	"sort"
	"time"

	"expeditor/internal/core/domain/model/deliverygroup"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/order"
)

// GroupAssigner is a domain service that places an order into a delivery
// group, minimizing extra vehicle trips while respecting the member cap.
//
// Business rules:
//   - open groups are scanned in ascending creation-time order
//   - the order joins the first group with room whose centroid lies within
//     the grouping radius of the order's dropoff point
//   - when no group matches, a new group opens at the order's coordinates
//   - orders without coordinates are never auto-grouped
//   - orders never move between groups once assigned
type GroupAssigner struct{}

// NewGroupAssigner creates a new GroupAssigner instance.
func NewGroupAssigner() GroupAssigner {
	return GroupAssigner{}
}

// Assign places the order into one of the open groups or opens a new one.
// It returns the joined group and whether that group was newly created; the
// caller persists the group with the matching expectation (update vs insert).
func (a GroupAssigner) Assign(
	o *order.Order,
	openGroups []*deliverygroup.Group,
	radiusKm float64,
	maxOrders int,
	now time.Time,
) (*deliverygroup.Group, bool, error) {
	if err := o.Validate(); err != nil {
		return nil, false, err
	}

	if !o.HasDropoff() {
		return nil, false, order.ErrOrderNotGroupable
	}
	dropoff := *o.Dropoff()

	sorted := make([]*deliverygroup.Group, len(openGroups))
	copy(sorted, openGroups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt().Before(sorted[j].CreatedAt())
	})

	for _, g := range sorted {
		if !g.HasCapacity() {
			continue
		}

		within, err := g.WithinRadiusKm(dropoff, radiusKm)
		if err != nil {
			return nil, false, err
		}
		if !within {
			continue
		}

		if err = a.join(o, g, dropoff); err != nil {
			return nil, false, err
		}
		return g, false, nil
	}

	g, err := deliverygroup.NewGroup(kernel.NewUUID(), dropoff, maxOrders, now)
	if err != nil {
		return nil, false, err
	}

	if err = a.join(o, g, dropoff); err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// join adds the order to the group and links the order to it.
func (a GroupAssigner) join(o *order.Order, g *deliverygroup.Group, dropoff kernel.GeoPoint) error {
	if err := g.Join(dropoff); err != nil {
		return err
	}

	return o.AssignToGroup(g.ID())
}
