package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
// Using promauto automatically registers metrics with the default registry

var (
	// ==================== HTTP METRICS ====================

	// HTTPRequestDuration tracks the duration of HTTP requests
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestsTotal counts total HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestsInFlight tracks currently processing requests
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// ==================== LINK STORE METRICS ====================

	// LinksCreatedTotal counts identifiers handed out by Create
	LinksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "links_created_total",
			Help: "Total number of short links created",
		},
	)

	// IdentifierCollisionsTotal counts generated identifiers that were already taken.
	// A rising rate means the identifier space is filling up.
	IdentifierCollisionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identifier_collisions_total",
			Help: "Total number of generated identifiers rejected as already in use",
		},
	)

	// AllocationFailuresTotal counts Create calls that ran out of attempts
	AllocationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identifier_allocation_failures_total",
			Help: "Total number of create calls that exhausted their retry budget",
		},
	)

	// LookupsTotal counts lookups by result (hit, miss)
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "link_lookups_total",
			Help: "Total number of short link lookups",
		},
		[]string{"result"},
	)

	// StoredLinks tracks how many links the store holds
	StoredLinks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_links",
			Help: "Number of short links currently stored",
		},
	)
)

// RecordLinkCreated increments the creation counter and the stored gauge
func RecordLinkCreated() {
	LinksCreatedTotal.Inc()
	StoredLinks.Inc()
}

// RecordCollision increments the collision counter
func RecordCollision() {
	IdentifierCollisionsTotal.Inc()
}

// RecordAllocationFailure increments the exhausted-budget counter
func RecordAllocationFailure() {
	AllocationFailuresTotal.Inc()
}

// RecordLookup counts a lookup as a hit or a miss
func RecordLookup(found bool) {
	if found {
		LookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	LookupsTotal.WithLabelValues("miss").Inc()
}
