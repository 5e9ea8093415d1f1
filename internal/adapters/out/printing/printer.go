package printing

import (
	"context"
	"log/slog"

	"expeditor/internal/core/domain/model/printjob"
	"expeditor/internal/core/ports"
)

// LogPrinter implements Printer by writing formatted tickets to the log.
// Useful for workers on machines without a physical printer and as the
// default in development.
type LogPrinter struct {
	name      string
	formatter ports.TicketFormatter
	logger    *slog.Logger
}

// NewLogPrinter creates a log-backed printer with the given identity.
func NewLogPrinter(name string, formatter ports.TicketFormatter, logger *slog.Logger) *LogPrinter {
	return &LogPrinter{
		name:      name,
		formatter: formatter,
		logger:    logger.With("component", "printer"),
	}
}

// Name identifies this printer on printed jobs.
func (p *LogPrinter) Name() string {
	return p.name
}

// Print renders and logs the ticket.
func (p *LogPrinter) Print(_ context.Context, snapshot printjob.TicketSnapshot) error {
	p.logger.Info("ticket printed",
		"printer", p.name,
		"product", snapshot.ProductName,
		"ticket", p.formatter.Format(snapshot))

	return nil
}
