package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "snippets"

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Recorder exposes per-snippet run metrics on a private Prometheus registry.
// It satisfies orchestration.Recorder.
type Recorder struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	lines    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Snippet runs by snippet and status.",
		}, []string{"snippet", "status"}),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "output_lines_total",
			Help:      "Lines written by each snippet.",
		}, []string{"snippet"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of snippet runs.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 7),
		}, []string{"snippet"}),
	}
	r.registry.MustRegister(r.runs, r.lines, r.duration)
	return r
}

// ObserveRun records one finished run.
func (r *Recorder) ObserveRun(name string, duration time.Duration, lines int, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	r.runs.WithLabelValues(name, status).Inc()
	r.lines.WithLabelValues(name).Add(float64(lines))
	r.duration.WithLabelValues(name).Observe(duration.Seconds())
}

// Gatherer returns the registry backing the recorder.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current metrics in the node-exporter textfile
// format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
