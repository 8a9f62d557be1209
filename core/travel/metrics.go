package travel

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	providerCalls     prometheus.Counter
	providerFailures  prometheus.Counter
	fallbackEstimates prometheus.Counter
	sweepEvictions    prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Counter, prometheus.Counter, prometheus.Counter, prometheus.Counter, prometheus.Counter, prometheus.Counter) {
	hits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "travel_cache_hits_total",
		Help: "Number of travel resolutions served from the cache",
	})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "travel_cache_misses_total",
		Help: "Number of travel resolutions that missed the cache",
	})
	calls := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "travel_provider_calls_total",
		Help: "Number of successful external provider calls",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "travel_provider_failures_total",
		Help: "Number of failed external provider calls",
	})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "travel_fallback_estimates_total",
		Help: "Number of resolutions answered by the local estimation fallback",
	})
	evictions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "travel_cache_evictions_total",
		Help: "Number of cache entries removed by the janitor sweep",
	})
	return hits, misses, calls, failures, fallbacks, evictions
}

func init() {
	cacheHits, cacheMisses, providerCalls, providerFailures, fallbackEstimates, sweepEvictions = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers travel metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(cacheHits, cacheMisses, providerCalls, providerFailures, fallbackEstimates, sweepEvictions)
}

// ResetMetrics reinitializes the collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	cacheHits, cacheMisses, providerCalls, providerFailures, fallbackEstimates, sweepEvictions = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
