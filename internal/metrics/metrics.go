// Package metrics collects Prometheus metrics for validation runs and
// exports them in the node-exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inodb/vcfcheck/internal/validate"
)

const (
	namespace = "vcfcheck"

	VerdictValid   = "valid"
	VerdictInvalid = "invalid"
)

// Recorder holds the counters for one CLI invocation.
type Recorder struct {
	registry *prometheus.Registry

	files    *prometheus.CounterVec
	lines    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewRecorder creates a Recorder backed by its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		files: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_total",
				Help:      "Files validated, by verdict and whether the verdict came from the result cache",
			},
			[]string{"verdict", "cached"},
		),
		lines: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_total",
				Help:      "Lines examined by freshly validated files, by line kind",
			},
			[]string{"kind"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Rejected files by error kind and rule",
			},
			[]string{"kind", "rule"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Time taken to validate a file",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
	}
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records one verdict. Cached verdicts only count towards
// files_total and failures_total.
func (r *Recorder) Observe(res *validate.Result) {
	verdict := VerdictValid
	if !res.Valid() {
		verdict = VerdictInvalid
	}
	cached := "false"
	if res.Cached {
		cached = "true"
	}
	r.files.WithLabelValues(verdict, cached).Inc()

	if ve := res.ValidationError(); ve != nil {
		r.failures.WithLabelValues(ve.Kind.String(), string(ve.Rule)).Inc()
	}

	if res.Cached {
		return
	}
	r.lines.WithLabelValues("meta").Add(float64(res.MetaLines))
	r.lines.WithLabelValues("data").Add(float64(res.DataLines))
	r.duration.Observe(res.Elapsed.Seconds())
}

// WriteTextfile writes all metrics to path, replacing it atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
