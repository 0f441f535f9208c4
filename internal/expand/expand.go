// Package expand injects rendered snippets into per-language markdown documents.
//
// Documents live directly inside <docs root>/<language>/. Each document is expanded
// once per chapter rendered for its language, using only that chapter's snippets;
// placeholders a chapter does not define are kept for the chapters after it. A
// placeholder still unresolved after the last chapter is an error.
package expand

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdocs/internal/logfields"
	"git.home.luguber.info/inful/snippetdocs/internal/metrics"
	"git.home.luguber.info/inful/snippetdocs/internal/snippets"
)

// Report summarizes an ExpandAll call.
type Report struct {
	// Languages that had a documentation directory and were expanded.
	Languages []string
	// Documents lists every path written.
	Documents []string
	// MissingLanguages had rendered snippets but no documentation directory.
	MissingLanguages []string
}

// Expander rewrites markdown documents with rendered snippets.
type Expander struct {
	docsRoot           string
	outputRoot         string
	markdownExtensions []string
	recorder           metrics.Recorder
	logger             *slog.Logger
	diagnostics        io.Writer
}

// Option configures an Expander.
type Option func(*Expander)

// WithOutputRoot writes expanded documents to <dir>/<language>/ instead of
// rewriting the source documents.
func WithOutputRoot(dir string) Option {
	return func(e *Expander) { e.outputRoot = dir }
}

// WithMarkdownExtensions sets which files in a language directory are documents.
func WithMarkdownExtensions(exts ...string) Option {
	return func(e *Expander) {
		if len(exts) > 0 {
			e.markdownExtensions = exts
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Expander) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Expander) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDiagnostics sets where user-facing warnings are printed (default stderr).
func WithDiagnostics(w io.Writer) Option {
	return func(e *Expander) {
		if w != nil {
			e.diagnostics = w
		}
	}
}

// New creates an Expander for the documentation tree at docsRoot.
func New(docsRoot string, opts ...Option) *Expander {
	e := &Expander{
		docsRoot:           docsRoot,
		markdownExtensions: []string{".md", ".mdx"},
		recorder:           metrics.NoopRecorder{},
		logger:             slog.Default(),
		diagnostics:        os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExpandAll expands the documents of every language in rendered. A language without
// a documentation directory is reported and skipped; any other failure stops the run.
func (e *Expander) ExpandAll(rendered snippets.Rendered) (*Report, error) {
	report := &Report{}

	for _, lang := range rendered.Languages() {
		written, err := e.ExpandLanguage(lang, rendered[lang])
		if errors.Is(err, ErrLanguageDirNotFound) {
			e.logger.Warn("No documentation directory for language; skipping",
				logfields.Language(lang),
				logfields.Path(e.languageDir(lang)))
			fmt.Fprintf(e.diagnostics, "Warning: no documentation directory for language %q (expected %s)\n", lang, e.languageDir(lang))
			e.recorder.IncLanguageSkipped(lang)
			report.MissingLanguages = append(report.MissingLanguages, lang)
			continue
		}
		if err != nil {
			return report, err
		}
		report.Languages = append(report.Languages, lang)
		report.Documents = append(report.Documents, written...)
	}

	e.logger.Info("Documents expanded",
		slog.Int("languages", len(report.Languages)),
		slog.Int("documents", len(report.Documents)),
		slog.Int("missing_languages", len(report.MissingLanguages)))
	return report, nil
}

// ExpandLanguage expands every document in lang's directory with the chapter-scoped
// snippets in chapters, and returns the paths written. It returns an error wrapping
// ErrLanguageDirNotFound when the directory does not exist.
func (e *Expander) ExpandLanguage(lang string, chapters map[string]map[string]string) ([]string, error) {
	dir := e.languageDir(lang)
	docs, err := e.documents(dir)
	if err != nil {
		return nil, err
	}

	chapterNames := make([]string, 0, len(chapters))
	for name := range chapters {
		chapterNames = append(chapterNames, name)
	}
	sort.Strings(chapterNames)

	var written []string
	for _, doc := range docs {
		out, err := e.expandDocument(lang, doc, chapterNames, chapters)
		if err != nil {
			return written, err
		}
		written = append(written, out)
		e.recorder.IncDocumentExpanded(lang)
	}
	return written, nil
}

func (e *Expander) languageDir(lang string) string {
	return filepath.Join(e.docsRoot, lang)
}

// documents lists the markdown files directly inside dir, in directory order.
func (e *Expander) documents(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isNotDir(dir) {
			return nil, fmt.Errorf("%w: %s", ErrLanguageDirNotFound, dir)
		}
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "read documentation directory failed").
			Fatal().
			WithPath(dir).
			Build()
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() || !e.isMarkdown(entry.Name()) {
			continue
		}
		docs = append(docs, filepath.Join(dir, entry.Name()))
	}
	return docs, nil
}

func (e *Expander) isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range e.markdownExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (e *Expander) expandDocument(lang, path string, chapterNames []string, chapters map[string]map[string]string) (string, error) {
	log := e.logger.With(logfields.Language(lang), logfields.Path(path))

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "read document failed").
			Fatal().
			WithLanguage(lang).
			WithPath(path).
			Build()
	}

	doc, err := ParseDocument(string(raw))
	if err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryExpand, "parse document failed").
			Fatal().
			WithLanguage(lang).
			WithPath(path).
			Build()
	}

	data, missing := doc.Resolve(chapterNames, chapters)
	if len(missing) > 0 {
		return "", foundationerrors.ExpandError("document references undefined snippets").
			WithLanguage(lang).
			WithPath(path).
			WithContext("snippets", missing).
			Build()
	}

	content, err := doc.Render(data)
	if err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryExpand, "expand document failed").
			Fatal().
			WithLanguage(lang).
			WithPath(path).
			Build()
	}

	target := path
	if e.outputRoot != "" {
		target = filepath.Join(e.outputRoot, lang, filepath.Base(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return "", foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "create output directory failed").
				Fatal().
				WithPath(filepath.Dir(target)).
				Build()
		}
	}

	if err := writeDocument(target, path, content); err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "write document failed").
			Fatal().
			WithLanguage(lang).
			WithPath(target).
			Build()
	}
	log.Debug("Document expanded", logfields.File(target))
	return target, nil
}

// writeDocument truncates and rewrites target, keeping the source file's permissions.
func writeDocument(target, source, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(source); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(target, []byte(content), mode)
}

func isNotDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
