package metrics

import (
	coremetrics "github.com/ygoas29/fieldway/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records engine events in Prometheus metrics.
type PromSink struct {
	generations *prometheus.CounterVec
	candidates  *prometheus.HistogramVec
	latency     *prometheus.HistogramVec
	resolutions *prometheus.CounterVec
	reschedules *prometheus.CounterVec
}

// NewPromSink registers engine metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "slot_generations_total",
		Help: "Total number of slot generation requests",
	}, []string{"vendor_id", "service_id"})
	candidates := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slot_candidates_per_request",
		Help:    "Number of candidate slots produced per generation request",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	}, []string{"vendor_id"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slot_generation_seconds",
		Help:    "Time spent generating candidate slots",
		Buckets: prometheus.DefBuckets,
	}, []string{"vendor_id"})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_resolutions_total",
		Help: "Total number of travel estimate resolutions by source",
	}, []string{"source"})
	reschedules := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reschedule_decisions_total",
		Help: "Total number of reschedule decisions by action",
	}, []string{"vendor_id", "action"})

	if err := reg.Register(generations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			generations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(candidates); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			candidates = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(resolutions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			resolutions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(reschedules); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			reschedules = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		generations: generations,
		candidates:  candidates,
		latency:     latency,
		resolutions: resolutions,
		reschedules: reschedules,
	}, nil
}

// RecordSlotGeneration increments the generation counter and observes the
// candidate count and elapsed time.
func (s *PromSink) RecordSlotGeneration(ev coremetrics.SlotGeneration) error {
	s.generations.WithLabelValues(ev.VendorID, ev.ServiceID).Inc()
	s.candidates.WithLabelValues(ev.VendorID).Observe(float64(ev.Candidates))
	s.latency.WithLabelValues(ev.VendorID).Observe(ev.Elapsed.Seconds())
	return nil
}

// RecordResolution counts a travel resolution by source.
func (s *PromSink) RecordResolution(ev coremetrics.Resolution) error {
	s.resolutions.WithLabelValues(ev.Source).Inc()
	return nil
}

// RecordReschedule counts a reschedule decision by action.
func (s *PromSink) RecordReschedule(ev coremetrics.Reschedule) error {
	s.reschedules.WithLabelValues(ev.VendorID, ev.Action).Inc()
	return nil
}
