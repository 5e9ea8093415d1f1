package services_test

import (
	"testing"
	"time"

	"expeditor/internal/core/domain/model/deliverygroup"
	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/order"
	"expeditor/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyOrderAt(t *testing.T, lat, lng float64) *order.Order {
	t.Helper()
	dropoff, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), "Ana", "Av. Paulista, 1000", "Bela Vista",
		&dropoff, order.Ready, nil, nil)
	require.NoError(t, err)
	return o
}

func readyOrderWithoutCoords(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), "Ana", "Av. Paulista, 1000", "Bela Vista",
		nil, order.Ready, nil, nil)
	require.NoError(t, err)
	return o
}

func TestGroupAssigner_Assign(t *testing.T) {
	assigner := services.NewGroupAssigner()

	t.Run("three nearby orders share one group, fourth opens a new one", func(t *testing.T) {
		orders := []*order.Order{
			readyOrderAt(t, -23.5505, -46.6333),
			readyOrderAt(t, -23.5510, -46.6340),
			readyOrderAt(t, -23.5500, -46.6325),
		}

		var groups []*deliverygroup.Group
		for _, o := range orders {
			g, created, err := assigner.Assign(o, groups, 2, 3, time.Now())
			require.NoError(t, err)
			if created {
				groups = append(groups, g)
			}
		}

		require.Len(t, groups, 1)
		assert.Equal(t, 3, groups[0].OrderCount())
		for _, o := range orders {
			require.NotNil(t, o.GroupID())
			assert.True(t, o.GroupID().IsEqual(groups[0].ID()))
		}

		fourth := readyOrderAt(t, -23.5507, -46.6330)
		g, created, err := assigner.Assign(fourth, groups, 2, 3, time.Now())

		require.NoError(t, err)
		assert.True(t, created)
		assert.False(t, g.IsEqual(groups[0]))
		assert.Equal(t, 1, g.OrderCount())
	})

	t.Run("joins the oldest matching group", func(t *testing.T) {
		center, _ := kernel.NewGeoPoint(-23.5505, -46.6333)
		older, err := deliverygroup.NewGroup(kernel.NewUUID(), center, 3, time.Now().Add(-time.Minute))
		require.NoError(t, err)
		newer, err := deliverygroup.NewGroup(kernel.NewUUID(), center, 3, time.Now())
		require.NoError(t, err)

		o := readyOrderAt(t, -23.5506, -46.6334)

		g, created, err := assigner.Assign(o, []*deliverygroup.Group{newer, older}, 2, 3, time.Now())

		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, g.IsEqual(older))
	})

	t.Run("distant group is skipped", func(t *testing.T) {
		rioCenter, _ := kernel.NewGeoPoint(-22.9068, -43.1729)
		rio, err := deliverygroup.NewGroup(kernel.NewUUID(), rioCenter, 3, time.Now())
		require.NoError(t, err)

		o := readyOrderAt(t, -23.5505, -46.6333)

		g, created, err := assigner.Assign(o, []*deliverygroup.Group{rio}, 2, 3, time.Now())

		require.NoError(t, err)
		assert.True(t, created)
		assert.False(t, g.IsEqual(rio))
	})

	t.Run("full group is skipped", func(t *testing.T) {
		center, _ := kernel.NewGeoPoint(-23.5505, -46.6333)
		full, err := deliverygroup.NewGroup(kernel.NewUUID(), center, 1, time.Now())
		require.NoError(t, err)
		require.NoError(t, full.Join(center))

		o := readyOrderAt(t, -23.5506, -46.6334)

		g, created, err := assigner.Assign(o, []*deliverygroup.Group{full}, 2, 3, time.Now())

		require.NoError(t, err)
		assert.True(t, created)
		assert.False(t, g.IsEqual(full))
	})

	t.Run("order without coordinates is never grouped", func(t *testing.T) {
		o := readyOrderWithoutCoords(t)

		_, _, err := assigner.Assign(o, nil, 2, 3, time.Now())

		require.ErrorIs(t, err, order.ErrOrderNotGroupable)
		assert.Nil(t, o.GroupID())
	})
}
