// Package observability exposes the coordination core's operational metrics
// in Prometheus format.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics maintained by the jobs and workers.
type Collector struct {
	registry *prometheus.Registry

	activeOrders    prometheus.Gauge
	onlineOperators *prometheus.GaugeVec
	ticketsPrinted  prometheus.Counter
	ticketsFailed   prometheus.Counter
	casConflicts    prometheus.Counter
}

// NewCollector creates a metrics collector with its own registry, so tests
// and multiple instances never fight over the global one.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		activeOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "expeditor_active_orders",
			Help: "Current number of orders not yet dispatched",
		}),
		onlineOperators: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "expeditor_online_operators",
			Help: "Current number of online operators per kitchen sector",
		}, []string{"sector_id"}),
		ticketsPrinted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "expeditor_tickets_printed_total",
			Help: "Total number of kitchen tickets printed successfully",
		}),
		ticketsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "expeditor_tickets_failed_total",
			Help: "Total number of kitchen ticket print failures",
		}),
		casConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "expeditor_cas_conflicts_total",
			Help: "Total number of optimistic concurrency conflicts observed",
		}),
	}

	c.registry.MustRegister(
		c.activeOrders,
		c.onlineOperators,
		c.ticketsPrinted,
		c.ticketsFailed,
		c.casConflicts,
	)

	return c
}

// SetActiveOrders records the current active-order volume.
func (c *Collector) SetActiveOrders(count int) {
	c.activeOrders.Set(float64(count))
}

// SetOnlineOperators replaces the per-sector operator gauges. A sector
// absent from counts drops off the gauge instead of holding its last value.
func (c *Collector) SetOnlineOperators(counts map[string]int) {
	c.onlineOperators.Reset()
	for sectorID, count := range counts {
		c.onlineOperators.WithLabelValues(sectorID).Set(float64(count))
	}
}

// TicketPrinted counts one successfully printed ticket.
func (c *Collector) TicketPrinted() {
	c.ticketsPrinted.Inc()
}

// TicketFailed counts one failed ticket print.
func (c *Collector) TicketFailed() {
	c.ticketsFailed.Inc()
}

// CASConflict counts one lost optimistic concurrency race.
func (c *Collector) CASConflict() {
	c.casConflicts.Inc()
}

// Handler returns the HTTP handler serving this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
