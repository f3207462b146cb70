package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder records scan metrics using Prometheus.
// A nil *Recorder is valid and records nothing.
// ⭐ SSOT: 메트릭 정의는 여기서만
type Recorder struct {
	registry *prometheus.Registry

	scansTotal     *prometheus.CounterVec
	scanDuration   prometheus.Histogram
	sourceFailures *prometheus.CounterVec
	sourceRecords  *prometheus.GaugeVec
	instruments    prometheus.Gauge
	candidates     *prometheus.GaugeVec
	flipsTotal     prometheus.Counter
}

// New creates a recorder backed by its own registry
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		scansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartmoney",
				Name:      "scans_total",
				Help:      "Total number of scans by outcome",
			},
			[]string{"status"},
		),
		scanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "smartmoney",
				Name:      "scan_duration_seconds",
				Help:      "Duration of a full scan in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		sourceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartmoney",
				Name:      "source_failures_total",
				Help:      "Source snapshots that could not be loaded",
			},
			[]string{"source"},
		),
		sourceRecords: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "smartmoney",
				Name:      "source_records",
				Help:      "Instruments covered by each source in the last scan",
			},
			[]string{"source"},
		),
		instruments: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "smartmoney",
				Name:      "instruments_scanned",
				Help:      "Instruments scanned in the last scan",
			},
		),
		candidates: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "smartmoney",
				Name:      "candidates",
				Help:      "Candidates above the conviction floor in the last scan",
			},
			[]string{"direction"},
		),
		flipsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "smartmoney",
				Name:      "direction_flips_total",
				Help:      "Direction flips against the previous scan",
			},
		),
	}
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordScan records a finished scan and its duration
func (r *Recorder) RecordScan(status string, seconds float64) {
	if r == nil {
		return
	}
	r.scansTotal.WithLabelValues(status).Inc()
	r.scanDuration.Observe(seconds)
}

// RecordSourceFailure records a source that failed to load
func (r *Recorder) RecordSourceFailure(source string) {
	if r == nil {
		return
	}
	r.sourceFailures.WithLabelValues(source).Inc()
}

// RecordSourceRecords records how many instruments a source covered
func (r *Recorder) RecordSourceRecords(source string, n int) {
	if r == nil {
		return
	}
	r.sourceRecords.WithLabelValues(source).Set(float64(n))
}

// RecordInstruments records the universe size
func (r *Recorder) RecordInstruments(n int) {
	if r == nil {
		return
	}
	r.instruments.Set(float64(n))
}

// RecordCandidates records the exported list size for one direction
func (r *Recorder) RecordCandidates(direction string, n int) {
	if r == nil {
		return
	}
	r.candidates.WithLabelValues(direction).Set(float64(n))
}

// RecordFlips adds direction flips
func (r *Recorder) RecordFlips(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.flipsTotal.Add(float64(n))
}
