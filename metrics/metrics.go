// Package metrics exposes Prometheus counters for backend selection and
// indicator compute time.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/evdnx/tacore/indicator/backend"
)

// Recorder implements backend.Recorder and times indicator runs.
type Recorder struct {
	selections *prometheus.CounterVec
	compute    *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg. A nil reg
// means prometheus.DefaultRegisterer.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tacore_backend_selections_total",
			Help: "Computation paths chosen per indicator call",
		}, []string{"indicator", "backend"}),
		compute: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tacore_indicator_compute_seconds",
			Help:    "Wall time spent computing one indicator over a frame",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"indicator"}),
	}
	for _, c := range []prometheus.Collector{r.selections, r.compute} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RecordSelection counts one backend decision.
func (r *Recorder) RecordSelection(indicator string, kind backend.Kind) {
	if r == nil {
		return
	}
	r.selections.WithLabelValues(indicator, kind.String()).Inc()
}

// ObserveCompute records how long an indicator took.
func (r *Recorder) ObserveCompute(indicator string, d time.Duration) {
	if r == nil {
		return
	}
	r.compute.WithLabelValues(indicator).Observe(d.Seconds())
}

var _ backend.Recorder = (*Recorder)(nil)
