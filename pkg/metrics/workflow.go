package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics records geocode-cache and availability-check activity.
type WorkflowMetrics struct {
	geocodeCacheHits   prometheus.Counter
	geocodeCacheMisses prometheus.Counter
	geocodeErrors      prometheus.Counter
	availabilityCheck  prometheus.Histogram
	ordersPlaced       *prometheus.CounterVec
}

// NewWorkflowMetrics registers the workflow metrics on the provided
// registerer. A nil registerer yields a no-op recorder.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	hits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geocode_cache_hits_total",
		Help: "Pincode lookups answered from the cache table.",
	})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geocode_cache_misses_total",
		Help: "Pincode lookups that called the external geocoder.",
	})
	errs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geocode_provider_errors_total",
		Help: "Failed calls to the external geocoder.",
	})
	availability := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "availability_check_duration_seconds",
		Help:    "Duration of delivery availability checks.",
		Buckets: prometheus.DefBuckets,
	})
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders persisted, labeled by payment method.",
	}, []string{"payment_method"})
	reg.MustRegister(hits, misses, errs, availability, placed)
	return &WorkflowMetrics{
		geocodeCacheHits:   hits,
		geocodeCacheMisses: misses,
		geocodeErrors:      errs,
		availabilityCheck:  availability,
		ordersPlaced:       placed,
	}
}

// GeocodeCacheHit counts a lookup served from the cache.
func (m *WorkflowMetrics) GeocodeCacheHit() {
	if m == nil || m.geocodeCacheHits == nil {
		return
	}
	m.geocodeCacheHits.Inc()
}

// GeocodeCacheMiss counts a lookup that reached the provider.
func (m *WorkflowMetrics) GeocodeCacheMiss() {
	if m == nil || m.geocodeCacheMisses == nil {
		return
	}
	m.geocodeCacheMisses.Inc()
}

// GeocodeProviderError counts a failed provider call.
func (m *WorkflowMetrics) GeocodeProviderError() {
	if m == nil || m.geocodeErrors == nil {
		return
	}
	m.geocodeErrors.Inc()
}

// ObserveAvailabilityCheck records the duration of one availability check.
func (m *WorkflowMetrics) ObserveAvailabilityCheck(duration time.Duration) {
	if m == nil || m.availabilityCheck == nil {
		return
	}
	m.availabilityCheck.Observe(duration.Seconds())
}

// OrderPlaced counts a persisted order by payment method.
func (m *WorkflowMetrics) OrderPlaced(paymentMethod string) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(paymentMethod).Inc()
}
