// Package pipeline runs one full snippet build: index -> render -> expand.
//
// Every run is a full rebuild; nothing is carried between runs.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/snippetdocs/internal/config"
	"git.home.luguber.info/inful/snippetdocs/internal/expand"
	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdocs/internal/logfields"
	"git.home.luguber.info/inful/snippetdocs/internal/metrics"
	"git.home.luguber.info/inful/snippetdocs/internal/observability"
	"git.home.luguber.info/inful/snippetdocs/internal/snippets"
	"git.home.luguber.info/inful/snippetdocs/internal/translation"
)

// Stage names used in logs and metrics.
const (
	StageIndex  = "index"
	StageRender = "render"
	StageExpand = "expand"
)

// Status is the overall outcome of a run.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusWarning  Status = "warning"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Result describes a finished (or aborted) run.
type Result struct {
	RunID     string
	Status    Status
	Index     *snippets.Index
	Rendered  snippets.Rendered
	Report    *expand.Report
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Pipeline wires the index builder, renderer and expander from a Config.
type Pipeline struct {
	cfg         *config.Config
	parsers     *translation.Registry
	recorder    metrics.Recorder
	logger      *slog.Logger
	diagnostics io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithLogger sets the base logger; each run adds its run_id.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithDiagnostics sets where user-facing warnings are printed (default stderr).
func WithDiagnostics(w io.Writer) Option {
	return func(p *Pipeline) {
		if w != nil {
			p.diagnostics = w
		}
	}
}

// WithParsers replaces the default translation parser registry.
func WithParsers(r *translation.Registry) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.parsers = r
		}
	}
}

// New validates that every configured translation extension has a parser and
// returns a ready Pipeline.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, foundationerrors.ConfigError("config required").Build()
	}
	p := &Pipeline{
		cfg:         cfg,
		parsers:     translation.DefaultRegistry(),
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
		diagnostics: os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, ext := range cfg.Snippets.TranslationExtensions {
		if !p.parsers.Supports("x" + ext) {
			return nil, foundationerrors.ConfigError("no parser for translation extension").
				WithContext("extension", ext).
				WithContext("supported", p.parsers.Extensions()).
				Build()
		}
	}
	return p, nil
}

// Config returns the configuration the pipeline was built from.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// Index discovers the snippet tree without rendering anything.
func (p *Pipeline) Index() (*snippets.Index, error) {
	return p.indexBuilder(p.logger).Build()
}

// Render discovers and renders snippets without touching any document.
func (p *Pipeline) Render() (*snippets.Index, snippets.Rendered, error) {
	idx, err := p.Index()
	if err != nil {
		return nil, nil, err
	}
	rendered, err := p.renderer(p.logger).RenderAll(idx)
	if err != nil {
		return idx, nil, err
	}
	return idx, rendered, nil
}

// Run executes a full build. ctx is checked between stages.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString(), StartTime: start}
	ctx = observability.WithRunID(ctx, result.RunID)
	log := observability.Logger(ctx, p.logger)

	finish := func(status Status, outcome metrics.RunOutcomeLabel) {
		result.Status = status
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(start)
		p.recorder.IncRunOutcome(outcome)
		p.recorder.ObserveRunDuration(result.Duration)
	}
	fail := func(stage string, err error) (*Result, error) {
		p.recorder.IncStageResult(stage, metrics.ResultFatal)
		finish(StatusFailed, metrics.RunFailed)
		log.Error("Run failed", logfields.Stage(stage), logfields.Error(err))
		return result, err
	}
	canceled := func() (*Result, error) {
		finish(StatusCanceled, metrics.RunCanceled)
		log.Warn("Run canceled")
		return result, ctx.Err()
	}

	if ctx.Err() != nil {
		return canceled()
	}

	log.Info("Starting run",
		slog.String("snippets", p.cfg.Snippets.Root),
		slog.String("docs", p.cfg.Docs.Root))

	// Stage 1: index
	stageStart := time.Now()
	idx, err := p.indexBuilder(p.stageLogger(ctx, StageIndex)).Build()
	p.observe(log, StageIndex, stageStart)
	if err != nil {
		return fail(StageIndex, err)
	}
	p.recorder.IncStageResult(StageIndex, metrics.ResultSuccess)
	result.Index = idx
	if ctx.Err() != nil {
		return canceled()
	}

	// Stage 2: render
	stageStart = time.Now()
	rendered, err := p.renderer(p.stageLogger(ctx, StageRender)).RenderAll(idx)
	p.observe(log, StageRender, stageStart)
	if err != nil {
		return fail(StageRender, err)
	}
	p.recorder.IncStageResult(StageRender, metrics.ResultSuccess)
	result.Rendered = rendered
	if ctx.Err() != nil {
		return canceled()
	}

	// Stage 3: expand
	stageStart = time.Now()
	report, err := p.expander(p.stageLogger(ctx, StageExpand)).ExpandAll(rendered)
	p.observe(log, StageExpand, stageStart)
	result.Report = report
	if err != nil {
		return fail(StageExpand, err)
	}

	if len(report.MissingLanguages) > 0 {
		p.recorder.IncStageResult(StageExpand, metrics.ResultWarning)
		finish(StatusWarning, metrics.RunWarning)
	} else {
		p.recorder.IncStageResult(StageExpand, metrics.ResultSuccess)
		finish(StatusSuccess, metrics.RunSuccess)
	}

	log.Info("Run complete",
		slog.String("status", string(result.Status)),
		slog.Int("snippets", rendered.Count()),
		slog.Int("documents", len(report.Documents)),
		logfields.Duration(result.Duration))
	return result, nil
}

func (p *Pipeline) stageLogger(ctx context.Context, stage string) *slog.Logger {
	return observability.Logger(observability.WithStage(ctx, stage), p.logger)
}

func (p *Pipeline) observe(log *slog.Logger, stage string, start time.Time) {
	d := time.Since(start)
	p.recorder.ObserveStageDuration(stage, d)
	log.Debug("Stage finished", logfields.Stage(stage), logfields.Duration(d))
}

func (p *Pipeline) indexBuilder(log *slog.Logger) *snippets.IndexBuilder {
	return snippets.NewIndexBuilder(p.cfg.Snippets.Root,
		snippets.WithTemplateExtensions(p.cfg.Snippets.TemplateExtensions...),
		snippets.WithTranslationExtensions(p.cfg.Snippets.TranslationExtensions...),
		snippets.WithIndexRecorder(p.recorder),
		snippets.WithIndexLogger(log),
	)
}

func (p *Pipeline) renderer(log *slog.Logger) *snippets.Renderer {
	return snippets.NewRenderer(p.parsers,
		snippets.WithRecorder(p.recorder),
		snippets.WithLogger(log),
	)
}

func (p *Pipeline) expander(log *slog.Logger) *expand.Expander {
	return expand.New(p.cfg.Docs.Root,
		expand.WithOutputRoot(p.cfg.Docs.Output),
		expand.WithMarkdownExtensions(p.cfg.Docs.MarkdownExtensions...),
		expand.WithRecorder(p.recorder),
		expand.WithLogger(log),
		expand.WithDiagnostics(p.diagnostics),
	)
}
