package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	registry          *prom.Registry
	stageDuration     *prom.HistogramVec
	runDuration       prom.Histogram
	stageResults      *prom.CounterVec
	runOutcome        *prom.CounterVec
	sectionsOmitted   *prom.CounterVec
	snippetsRendered  *prom.CounterVec
	documentsExpanded *prom.CounterVec
	languagesSkipped  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "snippetdocs",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "snippetdocs",
			Name:      "run_duration_seconds",
			Help:      "Total pipeline run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "snippetdocs",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "snippetdocs",
			Name:      "run_outcomes_total",
			Help:      "Pipeline runs by final status",
		}, []string{"outcome"})
		pr.sectionsOmitted = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "snippetdocs",
			Name:      "sections_omitted_total",
			Help:      "Snippet sections left out of the template index, by reason",
		}, []string{"reason"})
		pr.snippetsRendered = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "snippetdocs",
			Name:      "snippets_rendered_total",
			Help:      "Rendered snippets by language",
		}, []string{"language"})
		pr.documentsExpanded = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "snippetdocs",
			Name:      "documents_expanded_total",
			Help:      "Markdown documents expanded and written, by language",
		}, []string{"language"})
		pr.languagesSkipped = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "snippetdocs",
			Name:      "languages_skipped_total",
			Help:      "Languages skipped because no documentation directory exists",
		}, []string{"language"})
		reg.MustRegister(pr.stageDuration, pr.runDuration, pr.stageResults, pr.runOutcome,
			pr.sectionsOmitted, pr.snippetsRendered, pr.documentsExpanded, pr.languagesSkipped)
	})
	return pr
}

// Registry returns the registry the recorder's collectors are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncSectionOmitted(reason string) {
	if p == nil || p.sectionsOmitted == nil {
		return
	}
	p.sectionsOmitted.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) IncSnippetRendered(language string) {
	if p == nil || p.snippetsRendered == nil {
		return
	}
	p.snippetsRendered.WithLabelValues(language).Inc()
}

func (p *PrometheusRecorder) IncDocumentExpanded(language string) {
	if p == nil || p.documentsExpanded == nil {
		return
	}
	p.documentsExpanded.WithLabelValues(language).Inc()
}

func (p *PrometheusRecorder) IncLanguageSkipped(language string) {
	if p == nil || p.languagesSkipped == nil {
		return
	}
	p.languagesSkipped.WithLabelValues(language).Inc()
}
