// Package printing renders kitchen tickets and drives the ticket printer.
package printing

import (
	"strconv"
	"strings"

	"expeditor/internal/core/domain/model/printjob"
)

const ticketWidth = 32

// TextFormatter renders a ticket snapshot as the fixed-width text block a
// thermal printer expects. Multi-line attributes (flavors, complements) are
// kept one entry per line, exactly as entered on the ordering platform.
type TextFormatter struct{}

// NewTextFormatter creates a ticket text formatter.
func NewTextFormatter() TextFormatter {
	return TextFormatter{}
}

// Format renders the snapshot into printable ticket text.
func (TextFormatter) Format(snapshot printjob.TicketSnapshot) string {
	var b strings.Builder

	divider := strings.Repeat("=", ticketWidth)

	b.WriteString(divider)
	b.WriteString("\n")
	writeField(&b, "ITEM", snapshot.ProductName)
	writeField(&b, "QTY", strconv.Itoa(snapshot.Quantity))

	if snapshot.Flavors != "" {
		writeBlock(&b, "FLAVORS", snapshot.Flavors)
	}
	if snapshot.EdgeType != "" {
		writeField(&b, "EDGE", snapshot.EdgeType)
	}
	if snapshot.Complements != "" {
		writeBlock(&b, "EXTRAS", snapshot.Complements)
	}
	if snapshot.Notes != "" {
		writeBlock(&b, "NOTES", snapshot.Notes)
	}

	b.WriteString(strings.Repeat("-", ticketWidth))
	b.WriteString("\n")
	writeField(&b, "CUSTOMER", snapshot.CustomerName)
	writeField(&b, "ADDRESS", snapshot.Address)
	if snapshot.Neighborhood != "" {
		writeField(&b, "AREA", snapshot.Neighborhood)
	}
	b.WriteString(divider)
	b.WriteString("\n")

	return b.String()
}

func writeField(b *strings.Builder, label string, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func writeBlock(b *strings.Builder, label string, value string) {
	b.WriteString(label)
	b.WriteString(":\n")
	for _, line := range strings.Split(value, "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}
