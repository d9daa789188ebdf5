// Package metrics records binding stage outcomes.
//
// Components depend on the Recorder interface and default to NoopRecorder, so a
// pipeline run without metrics configured pays nothing for them. The CLI swaps in
// a PrometheusRecorder when a metrics file is requested.
package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFatal   ResultLabel = "fatal"
)

type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	AddArtifacts(format string, n int)
	IncConversionResult(success bool)
	IncConverterOutcome(state string)
}

// NoopRecorder is the default Recorder.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) AddArtifacts(string, int)                   {}
func (NoopRecorder) IncConversionResult(bool)                   {}
func (NoopRecorder) IncConverterOutcome(string)                 {}
