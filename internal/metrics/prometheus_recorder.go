package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	pages         *prom.GaugeVec
	renderBytes   prom.Histogram
}

// NewPrometheusRecorder constructs the navigation metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "build_duration_seconds",
			Help:      "Duration of navigation tree builds",
			Buckets:   prom.ExponentialBuckets(0.0005, 4, 8),
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "build_outcomes_total",
			Help:      "Navigation builds by outcome",
		}, []string{"outcome"}),
		pages: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "pages",
			Help:      "Pages seen by the last navigation build",
		}, []string{"state"}),
		renderBytes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "render_bytes",
			Help:      "Size of rendered navigation markup",
			Buckets:   prom.ExponentialBuckets(256, 4, 8),
		}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.pages, pr.renderBytes)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetPageCounts(included, excluded int) {
	if p == nil {
		return
	}
	p.pages.WithLabelValues("included").Set(float64(included))
	p.pages.WithLabelValues("excluded").Set(float64(excluded))
}

func (p *PrometheusRecorder) ObserveRenderBytes(n int) {
	if p == nil {
		return
	}
	p.renderBytes.Observe(float64(n))
}
