package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// RunOutcomeLabel enumerates final pipeline run outcomes.
type RunOutcomeLabel string

const (
	RunSuccess  RunOutcomeLabel = "success"
	RunWarning  RunOutcomeLabel = "warning" // completed, but some languages had no docs directory
	RunFailed   RunOutcomeLabel = "failed"
	RunCanceled RunOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for pipeline runs. Implementations
// may forward to Prometheus or similar. All methods must be safe for nil receivers
// when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncRunOutcome(outcome RunOutcomeLabel)
	IncSectionOmitted(reason string)
	IncSnippetRendered(language string)
	IncDocumentExpanded(language string)
	IncLanguageSkipped(language string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(RunOutcomeLabel)              {}
func (NoopRecorder) IncSectionOmitted(string)                   {}
func (NoopRecorder) IncSnippetRendered(string)                  {}
func (NoopRecorder) IncDocumentExpanded(string)                 {}
func (NoopRecorder) IncLanguageSkipped(string)                  {}
