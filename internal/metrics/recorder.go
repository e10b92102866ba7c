// Package metrics records build outcomes for watch mode's Prometheus
// endpoint.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Build outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder registers and updates the build metrics.
type Recorder struct {
	registry       *prom.Registry
	buildDuration  prom.Histogram
	buildOutcomes  *prom.CounterVec
	postsPublished prom.Gauge
	postsExcluded  prom.Gauge
}

// NewRecorder constructs and registers the build metrics on reg. A nil reg
// gets a private registry, which keeps tests isolated.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &Recorder{registry: reg}
	r.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "blogbuilder",
		Name:      "build_duration_seconds",
		Help:      "Total duration of one build pass",
		Buckets:   prom.DefBuckets,
	})
	r.buildOutcomes = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "blogbuilder",
		Name:      "builds_total",
		Help:      "Build counts by final outcome",
	}, []string{"outcome"})
	r.postsPublished = prom.NewGauge(prom.GaugeOpts{
		Namespace: "blogbuilder",
		Name:      "posts_published",
		Help:      "Posts included in the artifacts by the last successful build",
	})
	r.postsExcluded = prom.NewGauge(prom.GaugeOpts{
		Namespace: "blogbuilder",
		Name:      "posts_excluded",
		Help:      "Future-dated posts excluded by the last successful build",
	})

	reg.MustRegister(r.buildDuration, r.buildOutcomes, r.postsPublished, r.postsExcluded)
	return r
}

// ObserveSuccess records a completed build.
func (r *Recorder) ObserveSuccess(duration time.Duration, published, excluded int) {
	r.buildDuration.Observe(duration.Seconds())
	r.buildOutcomes.WithLabelValues(OutcomeSuccess).Inc()
	r.postsPublished.Set(float64(published))
	r.postsExcluded.Set(float64(excluded))
}

// ObserveFailure records a failed build. The post gauges keep their last
// successful values.
func (r *Recorder) ObserveFailure(duration time.Duration) {
	r.buildDuration.Observe(duration.Seconds())
	r.buildOutcomes.WithLabelValues(OutcomeFailure).Inc()
}

// Handler exposes the registry for scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
