package printing_test

import (
	"testing"

	"expeditor/internal/adapters/out/printing"
	"expeditor/internal/core/domain/model/printjob"

	"github.com/stretchr/testify/assert"
)

func TestTextFormatter_Format(t *testing.T) {
	formatter := printing.NewTextFormatter()

	t.Run("should render all populated fields", func(t *testing.T) {
		ticket := formatter.Format(printjob.TicketSnapshot{
			ProductName:  "Pizza Grande",
			Quantity:     2,
			Notes:        "no onions",
			Complements:  "extra cheese\ngarlic dip",
			EdgeType:     "stuffed",
			Flavors:      "margherita\ncalabresa",
			CustomerName: "Maria Silva",
			Address:      "Rua das Flores 123",
			Neighborhood: "Centro",
		})

		assert.Contains(t, ticket, "ITEM: Pizza Grande")
		assert.Contains(t, ticket, "QTY: 2")
		assert.Contains(t, ticket, "EDGE: stuffed")
		assert.Contains(t, ticket, "  margherita\n  calabresa")
		assert.Contains(t, ticket, "  extra cheese\n  garlic dip")
		assert.Contains(t, ticket, "  no onions")
		assert.Contains(t, ticket, "CUSTOMER: Maria Silva")
		assert.Contains(t, ticket, "ADDRESS: Rua das Flores 123")
		assert.Contains(t, ticket, "AREA: Centro")
	})

	t.Run("should omit empty optional sections", func(t *testing.T) {
		ticket := formatter.Format(printjob.TicketSnapshot{
			ProductName:  "Coca-Cola 2L",
			Quantity:     1,
			CustomerName: "Maria Silva",
			Address:      "Rua das Flores 123",
		})

		assert.NotContains(t, ticket, "FLAVORS")
		assert.NotContains(t, ticket, "EDGE")
		assert.NotContains(t, ticket, "EXTRAS")
		assert.NotContains(t, ticket, "NOTES")
		assert.NotContains(t, ticket, "AREA")
	})
}
