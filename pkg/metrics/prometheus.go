package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	snapshotFetches   *prometheus.CounterVec
	transportFailures *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	simulations       *prometheus.CounterVec
	latency           *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		snapshotFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecogrid_snapshot_fetches_total",
				Help: "Total snapshots produced, by data source",
			},
			[]string{"source"},
		),
		transportFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecogrid_transport_failures_total",
				Help: "Failed upstream attempts, by transport",
			},
			[]string{"transport"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecogrid_cache_hits_total",
				Help: "Fresh snapshot cache hits, by key",
			},
			[]string{"key"},
		),
		simulations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecogrid_dr_simulations_total",
				Help: "DR simulations run, by validity",
			},
			[]string{"valid"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ecogrid_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSnapshotFetch records a produced snapshot by provenance.
func (r *Recorder) RecordSnapshotFetch(source string) {
	r.snapshotFetches.WithLabelValues(source).Inc()
}

// RecordTransportFailure records a failed upstream attempt.
func (r *Recorder) RecordTransportFailure(transport string) {
	r.transportFailures.WithLabelValues(transport).Inc()
}

// RecordCacheHit records a fresh cache hit.
func (r *Recorder) RecordCacheHit(key string) {
	r.cacheHits.WithLabelValues(key).Inc()
}

// RecordSimulation records a DR simulation run.
func (r *Recorder) RecordSimulation(valid bool) {
	v := "true"
	if !valid {
		v = "false"
	}
	r.simulations.WithLabelValues(v).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
