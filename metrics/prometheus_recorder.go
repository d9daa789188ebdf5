package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "novel_binder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry          *prom.Registry
	stageDuration     *prom.HistogramVec
	stageResults      *prom.CounterVec
	artifacts         *prom.CounterVec
	conversions       *prom.CounterVec
	converterOutcomes *prom.CounterVec
}

// NewPrometheusRecorder registers the binder metrics on reg, or on a fresh
// registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual binding stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		artifacts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_total",
			Help:      "Files produced by format",
		}, []string{"format"}),
		conversions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Per-artifact binary conversion results",
		}, []string{"result"}),
		converterOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "converter_outcomes_total",
			Help:      "Terminal state of the converter resolution",
		}, []string{"state"}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.artifacts, pr.conversions, pr.converterOutcomes)
	return pr
}

// WriteToFile dumps the current metrics in the text exposition format.
func (p *PrometheusRecorder) WriteToFile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) AddArtifacts(format string, n int) {
	if p == nil {
		return
	}
	p.artifacts.WithLabelValues(format).Add(float64(n))
}

func (p *PrometheusRecorder) IncConversionResult(success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.conversions.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) IncConverterOutcome(state string) {
	if p == nil {
		return
	}
	p.converterOutcomes.WithLabelValues(state).Inc()
}
