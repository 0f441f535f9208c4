package snippets

import (
	"log/slog"
	"os"

	"golang.org/x/text/language"

	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdocs/internal/logfields"
	"git.home.luguber.info/inful/snippetdocs/internal/metrics"
	"git.home.luguber.info/inful/snippetdocs/internal/templating"
	"git.home.luguber.info/inful/snippetdocs/internal/translation"
)

// Renderer renders every indexed template against each of its translations.
type Renderer struct {
	parsers  *translation.Registry
	recorder metrics.Recorder
	logger   *slog.Logger
}

// RenderOption configures a Renderer.
type RenderOption func(*Renderer)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) RenderOption {
	return func(rn *Renderer) {
		if r != nil {
			rn.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RenderOption {
	return func(rn *Renderer) {
		if l != nil {
			rn.logger = l
		}
	}
}

// NewRenderer creates a Renderer. A nil registry means translation.DefaultRegistry().
func NewRenderer(parsers *translation.Registry, opts ...RenderOption) *Renderer {
	if parsers == nil {
		parsers = translation.DefaultRegistry()
	}
	r := &Renderer{
		parsers:  parsers,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderAll renders the index in order. When two translations resolve to the same
// language and snippet name within a chapter, the one processed last wins.
// Any read, parse or render failure stops rendering and is returned.
func (r *Renderer) RenderAll(idx *Index) (Rendered, error) {
	out := make(Rendered)
	warned := make(map[string]bool)

	for _, chapter := range idx.Chapters {
		for _, entry := range chapter.Entries {
			tmpl, err := r.compile(entry.Template)
			if err != nil {
				return nil, err
			}
			for _, tr := range entry.Translations {
				text, err := r.renderOne(tmpl, entry.Template, tr)
				if err != nil {
					return nil, err
				}
				if !warned[tr.Language] {
					r.checkLanguage(tr)
					warned[tr.Language] = true
				}
				if _, exists := out.Snippet(tr.Language, chapter.Name, entry.Template.SnippetName()); exists {
					r.logger.Debug("Replacing previously rendered snippet",
						logfields.Language(tr.Language),
						logfields.Chapter(chapter.Name),
						logfields.Snippet(entry.Template.SnippetName()),
						logfields.Translation(tr.Path))
				}
				out.Set(tr.Language, chapter.Name, entry.Template.SnippetName(), text)
				r.recorder.IncSnippetRendered(tr.Language)
			}
		}
	}

	r.logger.Info("Snippets rendered",
		slog.Int("languages", len(out)),
		slog.Int("snippets", out.Count()))
	return out, nil
}

// compile reads and compiles a template once for all of its translations.
func (r *Renderer) compile(t Template) (*templating.Template, error) {
	fail := func(err error, category foundationerrors.ErrorCategory, msg string) error {
		return foundationerrors.WrapError(err, category, msg).
			Fatal().
			WithChapter(t.Chapter).
			WithContext("section", t.Section).
			WithPath(t.Path).
			Build()
	}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, fail(err, foundationerrors.CategoryFileSystem, "read template failed")
	}
	tmpl, err := templating.Compile(string(data))
	if err != nil {
		return nil, fail(err, foundationerrors.CategoryRender, "compile template failed")
	}
	return tmpl, nil
}

func (r *Renderer) renderOne(tmpl *templating.Template, t Template, tr Translation) (string, error) {
	fail := func(err error, category foundationerrors.ErrorCategory, msg string) error {
		return foundationerrors.WrapError(err, category, msg).
			Fatal().
			WithChapter(t.Chapter).
			WithContext("section", t.Section).
			WithContext("template", t.Path).
			WithContext("translation", tr.Path).
			WithLanguage(tr.Language).
			WithPath(tr.Path).
			Build()
	}

	raw, err := os.ReadFile(tr.Path)
	if err != nil {
		return "", fail(err, foundationerrors.CategoryFileSystem, "read translation failed")
	}
	data, err := r.parsers.Parse(tr.Path, raw)
	if err != nil {
		return "", fail(err, foundationerrors.CategoryParse, "parse translation failed")
	}
	text, err := tmpl.Render(data)
	if err != nil {
		return "", fail(err, foundationerrors.CategoryRender, "render snippet failed")
	}
	return text, nil
}

// checkLanguage warns when a translation's stem is not a BCP 47 tag. The stem is
// still used as the language either way.
func (r *Renderer) checkLanguage(tr Translation) {
	if _, err := language.Parse(tr.Language); err != nil {
		r.logger.Warn("Translation file name is not a BCP 47 language tag",
			logfields.Language(tr.Language),
			logfields.Translation(tr.Path),
			logfields.Error(err))
	}
}
