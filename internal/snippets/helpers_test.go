package snippets

import (
	"io"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/snippetdocs/internal/metrics"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ metrics.Recorder = (*countingRecorder)(nil)

type countingRecorder struct {
	omitted  map[string]int
	rendered map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{omitted: map[string]int{}, rendered: map[string]int{}}
}

func (c *countingRecorder) IncSectionOmitted(reason string)    { c.omitted[reason]++ }
func (c *countingRecorder) IncSnippetRendered(language string) { c.rendered[language]++ }

// The remaining Recorder methods are not exercised by this package.
func (c *countingRecorder) ObserveStageDuration(string, time.Duration) {}
func (c *countingRecorder) ObserveRunDuration(time.Duration)           {}
func (c *countingRecorder) IncStageResult(string, metrics.ResultLabel) {}
func (c *countingRecorder) IncRunOutcome(metrics.RunOutcomeLabel)      {}
func (c *countingRecorder) IncDocumentExpanded(string)                 {}
func (c *countingRecorder) IncLanguageSkipped(string)                  {}
