package kitchenitem_test

import (
	"testing"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/kitchenitem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T) *kitchenitem.Item {
	t.Helper()
	item, err := kitchenitem.NewItem(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Calabresa",
		2,
		kitchenitem.Details{
			Notes:    "extra cheese",
			EdgeType: "catupiry",
			Flavors:  "calabresa\nmussarela",
		},
	)
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("should create valid pending item", func(t *testing.T) {
		item := newTestItem(t)

		require.NoError(t, item.Validate())
		assert.Equal(t, kitchenitem.Pending, item.Status())
		assert.Equal(t, "Calabresa", item.ProductName())
		assert.Equal(t, 2, item.Quantity())
		assert.Nil(t, item.ClaimedBy())
		assert.Nil(t, item.ClaimedAt())
		assert.Nil(t, item.OvenEntryAt())
		assert.Nil(t, item.ReadyAt())
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := kitchenitem.NewItem(invalid, kernel.NewUUID(), kernel.NewUUID(), "Calabresa", 1, kitchenitem.Details{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty product name", func(t *testing.T) {
		_, err := kitchenitem.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", 1, kitchenitem.Details{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "productName")
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		_, err := kitchenitem.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Calabresa", 0, kitchenitem.Details{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity is invalid")
	})
}

func TestItem_Validate(t *testing.T) {
	t.Run("nil item fails validation", func(t *testing.T) {
		var item *kitchenitem.Item

		err := item.Validate()

		require.Error(t, err)
		assert.Equal(t, kitchenitem.ErrItemIsNotConstructed, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		item := &kitchenitem.Item{}

		require.Error(t, item.Validate())
	})
}

func TestItem_Claim(t *testing.T) {
	operator := kernel.NewUUID()
	now := time.Now()

	t.Run("claims pending item", func(t *testing.T) {
		item := newTestItem(t)

		err := item.Claim(operator, now)

		require.NoError(t, err)
		assert.Equal(t, kitchenitem.InPrep, item.Status())
		require.NotNil(t, item.ClaimedBy())
		assert.True(t, item.ClaimedBy().IsEqual(operator))
		require.NotNil(t, item.ClaimedAt())
		assert.Equal(t, now, *item.ClaimedAt())
	})

	t.Run("re-claim by same operator is a no-op success", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.Claim(operator, now))

		err := item.Claim(operator, now.Add(time.Second))

		require.NoError(t, err)
		assert.Equal(t, kitchenitem.InPrep, item.Status())
		// Original claim timestamp is preserved.
		assert.Equal(t, now, *item.ClaimedAt())
	})

	t.Run("claim by different operator fails", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.Claim(operator, now))

		err := item.Claim(kernel.NewUUID(), now)

		require.ErrorIs(t, err, kitchenitem.ErrItemAlreadyClaimed)
	})

	t.Run("claim with invalid operator fails", func(t *testing.T) {
		item := newTestItem(t)
		var invalid kernel.UUID

		require.Error(t, item.Claim(invalid, now))
	})
}

func TestItem_EnterOven(t *testing.T) {
	operator := kernel.NewUUID()
	now := time.Now()
	bake := 8 * time.Minute

	t.Run("claimed in_prep item enters the oven", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.Claim(operator, now))

		err := item.EnterOven(operator, now, bake)

		require.NoError(t, err)
		assert.Equal(t, kitchenitem.InOven, item.Status())
		require.NotNil(t, item.OvenEntryAt())
		assert.Equal(t, now, *item.OvenEntryAt())
		require.NotNil(t, item.EstimatedExitAt())
		assert.Equal(t, now.Add(bake), *item.EstimatedExitAt())
	})

	t.Run("pending item cannot enter the oven", func(t *testing.T) {
		item := newTestItem(t)

		err := item.EnterOven(operator, now, bake)

		require.ErrorIs(t, err, kitchenitem.ErrItemNotClaimed)
	})

	t.Run("non-claimant cannot advance the item", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.Claim(operator, now))

		err := item.EnterOven(kernel.NewUUID(), now, bake)

		require.ErrorIs(t, err, kitchenitem.ErrItemNotClaimed)
	})

	t.Run("non-positive bake duration fails", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.Claim(operator, now))

		err := item.EnterOven(operator, now, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bakeDuration")
	})
}

func TestItem_MarkReady(t *testing.T) {
	operator := kernel.NewUUID()
	now := time.Now()

	t.Run("claimed in_oven item becomes ready and releases claim", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.Claim(operator, now))
		require.NoError(t, item.EnterOven(operator, now, 8*time.Minute))

		readyAt := now.Add(9 * time.Minute)
		err := item.MarkReady(operator, readyAt)

		require.NoError(t, err)
		assert.Equal(t, kitchenitem.Ready, item.Status())
		require.NotNil(t, item.ReadyAt())
		assert.Equal(t, readyAt, *item.ReadyAt())
		assert.Nil(t, item.ClaimedBy())
		assert.Nil(t, item.ClaimedAt())
	})

	t.Run("in_prep item cannot skip the oven", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.Claim(operator, now))

		err := item.MarkReady(operator, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status to mark ready")
	})

	t.Run("non-claimant cannot mark ready", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.Claim(operator, now))
		require.NoError(t, item.EnterOven(operator, now, 8*time.Minute))

		err := item.MarkReady(kernel.NewUUID(), now)

		require.ErrorIs(t, err, kitchenitem.ErrItemNotClaimed)
	})
}

func TestRestoreItem(t *testing.T) {
	id := kernel.NewUUID()
	orderID := kernel.NewUUID()
	sectorID := kernel.NewUUID()
	operator := kernel.NewUUID()
	now := time.Now()

	t.Run("restores a claimed in_oven item", func(t *testing.T) {
		exit := now.Add(8 * time.Minute)

		item, err := kitchenitem.RestoreItem(
			id, orderID, sectorID, "Calabresa", 2, kitchenitem.Details{},
			kitchenitem.InOven, &operator, &now, &now, &exit, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, kitchenitem.InOven, item.Status())
		assert.True(t, item.IsClaimedBy(operator))
	})

	t.Run("rejects claim fields on a pending item", func(t *testing.T) {
		_, err := kitchenitem.RestoreItem(
			id, orderID, sectorID, "Calabresa", 2, kitchenitem.Details{},
			kitchenitem.Pending, &operator, &now, nil, nil, nil,
		)

		require.Error(t, err)
	})

	t.Run("rejects half-set claim fields", func(t *testing.T) {
		_, err := kitchenitem.RestoreItem(
			id, orderID, sectorID, "Calabresa", 2, kitchenitem.Details{},
			kitchenitem.InPrep, &operator, nil, nil, nil, nil,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "both")
	})

	t.Run("rejects readyAt on non-ready item", func(t *testing.T) {
		_, err := kitchenitem.RestoreItem(
			id, orderID, sectorID, "Calabresa", 2, kitchenitem.Details{},
			kitchenitem.Pending, nil, nil, nil, nil, &now,
		)

		require.Error(t, err)
	})

	t.Run("restores an unclaimed ready item", func(t *testing.T) {
		item, err := kitchenitem.RestoreItem(
			id, orderID, sectorID, "Calabresa", 2, kitchenitem.Details{},
			kitchenitem.Ready, nil, nil, &now, &now, &now,
		)

		require.NoError(t, err)
		assert.Equal(t, kitchenitem.Ready, item.Status())
		assert.Nil(t, item.ClaimedBy())
	})
}
