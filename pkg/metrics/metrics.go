// Package metrics exposes Prometheus collectors for the HTTP layer, the
// domain event stream and live slot availability.
package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "letsparkit"

// Metrics owns a private registry so tests and the process never share state
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests *prometheus.HistogramVec
	events       *prometheus.CounterVec
	bookings     *prometheus.CounterVec
	revenue      prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Committed domain events by type",
		}, []string{"type"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking lifecycle transitions by location and outcome",
		}, []string{"location_id", "outcome"}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_inr_total",
			Help:      "Sum of paid payment amounts",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.events,
		m.bookings,
		m.revenue,
	)
	return m
}

// Publish implements parking.EventSink
func (m *Metrics) Publish(_ context.Context, event parking.Event) {
	m.events.WithLabelValues(string(event.Type)).Inc()

	switch event.Type {
	case parking.EventBookingCreated, parking.EventBookingCancelled, parking.EventBookingCompleted:
		if event.Booking != nil {
			m.bookings.WithLabelValues(event.Booking.LocationID, string(event.Booking.Status)).Inc()
		}
	case parking.EventPaymentRecorded:
		if event.Payment != nil && event.Payment.Status == parking.PaymentStatusPaid {
			m.revenue.Add(event.Payment.Amount)
		}
	}
}

// LocationLister is the read side of the store the availability gauges need
type LocationLister interface {
	Locations() []parking.Location
}

type availabilityCollector struct {
	locations LocationLister
	available *prometheus.Desc
	total     *prometheus.Desc
}

func (c *availabilityCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.available
	ch <- c.total
}

func (c *availabilityCollector) Collect(ch chan<- prometheus.Metric) {
	for _, loc := range c.locations.Locations() {
		ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, float64(loc.AvailableSlots), loc.ID)
		ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(loc.TotalSlots), loc.ID)
	}
}

// RegisterAvailability reports slot counts per location at scrape time
func (m *Metrics) RegisterAvailability(locations LocationLister) error {
	return m.Registry.Register(&availabilityCollector{
		locations: locations,
		available: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "location", "available_slots"),
			"Slots currently free at a location", []string{"location_id"}, nil),
		total: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "location", "total_slots"),
			"Slots at a location", []string{"location_id"}, nil),
	})
}

// Middleware records request latency labelled by the matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		ErrorLog:      errorLog{logger.GetDefault().WithComponent("metrics")},
		ErrorHandling: promhttp.ContinueOnError,
	})
	return gin.WrapH(h)
}

// errorLog adapts the logger to promhttp.Logger
type errorLog struct {
	logger *logger.Logger
}

func (l errorLog) Println(v ...interface{}) {
	l.logger.Error(fmt.Sprint(v...))
}
