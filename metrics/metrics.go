// Package metrics provides Prometheus instrumentation for split,
// reconstruct and delay-function operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace is the Prometheus namespace for all trishare metrics
	Namespace = "trishare"

	// Label names
	LabelOperation = "operation"
	LabelStatus    = "status"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpSplit       = "split"
	OpReconstruct = "reconstruct"
	OpIterate     = "iterate"
	OpProve       = "prove"
	OpVerifyProof = "verify_proof"
	OpProtect     = "protect"
)

// Recorder holds one set of collectors registered against a single
// registry. A nil *Recorder is valid and records nothing.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	iterations prometheus.Counter
	shareBytes prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "operations_total",
				Help:      "Total number of operations by type and status",
			},
			[]string{LabelOperation, LabelStatus},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of operations in seconds",
				Buckets:   []float64{.0001, .001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{LabelOperation},
		),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "vdf_iterations_total",
			Help:      "Total number of completed delay-function iterations",
		}),
		shareBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "share_bytes",
			Help:      "Length in bytes of the most recently produced shares",
		}),
	}

	for _, c := range []prometheus.Collector{r.operations, r.duration, r.iterations, r.shareBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe records one operation that started at start and finished with err.
func (r *Recorder) Observe(op string, start time.Time, err error) {
	if r == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	r.operations.WithLabelValues(op, status).Inc()
	r.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// IncIterations counts one completed delay-function iteration.
func (r *Recorder) IncIterations() {
	if r == nil {
		return
	}
	r.iterations.Inc()
}

// SetShareBytes records the length of the latest share set.
func (r *Recorder) SetShareBytes(n int) {
	if r == nil {
		return
	}
	r.shareBytes.Set(float64(n))
}
