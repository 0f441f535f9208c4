package snippets

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdocs/internal/logfields"
	"git.home.luguber.info/inful/snippetdocs/internal/metrics"
	"git.home.luguber.info/inful/snippetdocs/internal/translation"
)

// Reasons a section is left out of the index.
const (
	OmitNoTranslations = "no_translations"
	OmitNoTemplate     = "no_template"
	OmitEmpty          = "empty"
	OmitUnreadable     = "unreadable"
)

// Template is a section's template file. Its snippet name is the section directory name.
type Template struct {
	Path    string
	Chapter string
	Section string
}

// SnippetName returns the name rendered output is stored under.
func (t Template) SnippetName() string { return t.Section }

// Translation is a per-language data file for one template.
type Translation struct {
	Path     string
	Language string
}

// Entry pairs a template with its translations in directory-listing order.
type Entry struct {
	Template     Template
	Translations []Translation
}

// Chapter groups the entries discovered under one chapter directory.
type Chapter struct {
	Name    string
	Entries []Entry
}

// Index is the result of scanning a snippet tree. Chapters and entries keep
// directory-listing order, which is the order rendering processes them in.
type Index struct {
	Root     string
	Chapters []Chapter
}

// Map returns the index as chapter -> template path -> translation paths.
// Chapters without any entry are absent.
func (i *Index) Map() map[string]map[string][]string {
	out := make(map[string]map[string][]string, len(i.Chapters))
	for _, ch := range i.Chapters {
		if len(ch.Entries) == 0 {
			continue
		}
		m := make(map[string][]string, len(ch.Entries))
		for _, e := range ch.Entries {
			paths := make([]string, len(e.Translations))
			for j, tr := range e.Translations {
				paths[j] = tr.Path
			}
			m[e.Template.Path] = paths
		}
		out[ch.Name] = m
	}
	return out
}

// Lookup returns the translation paths indexed for templatePath in chapter.
func (i *Index) Lookup(chapter, templatePath string) ([]string, bool) {
	paths, ok := i.Map()[chapter][templatePath]
	return paths, ok
}

// TemplateCount returns the number of indexed templates.
func (i *Index) TemplateCount() int {
	n := 0
	for _, ch := range i.Chapters {
		n += len(ch.Entries)
	}
	return n
}

// TranslationCount returns the number of indexed translations.
func (i *Index) TranslationCount() int {
	n := 0
	for _, ch := range i.Chapters {
		for _, e := range ch.Entries {
			n += len(e.Translations)
		}
	}
	return n
}

// fileRole classifies a section child.
type fileRole int

const (
	roleIgnored fileRole = iota
	roleTemplate
	roleTranslation
)

// IndexBuilder scans a snippet root into an Index.
type IndexBuilder struct {
	root                  string
	templateExtensions    []string
	translationExtensions []string
	recorder              metrics.Recorder
	logger                *slog.Logger
}

// IndexOption configures an IndexBuilder.
type IndexOption func(*IndexBuilder)

// WithTemplateExtensions sets the suffixes that mark a template file.
func WithTemplateExtensions(exts ...string) IndexOption {
	return func(b *IndexBuilder) {
		if len(exts) > 0 {
			b.templateExtensions = exts
		}
	}
}

// WithTranslationExtensions sets the suffixes that mark a translation file.
func WithTranslationExtensions(exts ...string) IndexOption {
	return func(b *IndexBuilder) {
		if len(exts) > 0 {
			b.translationExtensions = exts
		}
	}
}

// WithIndexRecorder sets the metrics recorder.
func WithIndexRecorder(r metrics.Recorder) IndexOption {
	return func(b *IndexBuilder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithIndexLogger sets the logger.
func WithIndexLogger(l *slog.Logger) IndexOption {
	return func(b *IndexBuilder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewIndexBuilder creates a builder for the snippet tree at root.
// Defaults: templates end in .tmpl or .zig, translations in .toml, .yaml or .yml.
func NewIndexBuilder(root string, opts ...IndexOption) *IndexBuilder {
	b := &IndexBuilder{
		root:                  root,
		templateExtensions:    []string{".tmpl", ".zig"},
		translationExtensions: translation.DefaultRegistry().Extensions(),
		recorder:              metrics.NoopRecorder{},
		logger:                slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build scans the snippet root. Sections that cannot contribute an entry are left out
// and logged; only a section with more than one template candidate is an error.
func (b *IndexBuilder) Build() (*Index, error) {
	idx := &Index{Root: b.root}

	chapters, err := os.ReadDir(b.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.logger.Warn("Snippet root not found; nothing to index", logfields.Path(b.root))
			return idx, nil
		}
		b.logger.Warn("Snippet root unreadable; nothing to index", logfields.Path(b.root), logfields.Error(err))
		return idx, nil
	}

	for _, chapterEntry := range chapters {
		if !chapterEntry.IsDir() {
			continue
		}
		chapter, err := b.buildChapter(chapterEntry.Name())
		if err != nil {
			return nil, err
		}
		idx.Chapters = append(idx.Chapters, chapter)
	}

	b.logger.Info("Snippet index built",
		logfields.Path(b.root),
		slog.Int("chapters", len(idx.Chapters)),
		slog.Int("templates", idx.TemplateCount()),
		slog.Int("translations", idx.TranslationCount()))
	return idx, nil
}

func (b *IndexBuilder) buildChapter(name string) (Chapter, error) {
	chapter := Chapter{Name: name}
	chapterPath := filepath.Join(b.root, name)

	sections, err := os.ReadDir(chapterPath)
	if err != nil {
		b.logger.Warn("Chapter directory unreadable; skipping", logfields.Chapter(name), logfields.Error(err))
		return chapter, nil
	}

	for _, sectionEntry := range sections {
		if !sectionEntry.IsDir() {
			continue
		}
		entry, ok, err := b.buildSection(name, sectionEntry.Name())
		if err != nil {
			return Chapter{}, err
		}
		if ok {
			chapter.Entries = append(chapter.Entries, entry)
		}
	}
	return chapter, nil
}

// buildSection classifies every child of the section first, then builds the entry.
func (b *IndexBuilder) buildSection(chapter, section string) (Entry, bool, error) {
	sectionPath := filepath.Join(b.root, chapter, section)
	log := b.logger.With(logfields.Chapter(chapter), logfields.Section(section))

	children, err := os.ReadDir(sectionPath)
	if err != nil {
		log.Warn("Section directory unreadable; skipping", logfields.Error(err))
		b.recorder.IncSectionOmitted(OmitUnreadable)
		return Entry{}, false, nil
	}

	var templates []string
	var translations []Translation
	for _, child := range children {
		if child.IsDir() {
			continue
		}
		path := filepath.Join(sectionPath, child.Name())
		switch b.classify(child.Name()) {
		case roleTemplate:
			templates = append(templates, path)
		case roleTranslation:
			translations = append(translations, Translation{Path: path, Language: translation.Language(path)})
		case roleIgnored:
			log.Debug("Ignoring file in snippet section", logfields.File(child.Name()))
		}
	}

	if len(templates) > 1 {
		return Entry{}, false, foundationerrors.DiscoveryError("section has more than one template").
			WithChapter(chapter).
			WithContext("section", section).
			WithPath(sectionPath).
			WithContext("templates", templates).
			Build()
	}

	switch {
	case len(templates) == 0 && len(translations) == 0:
		log.Debug("Empty snippet section; skipping", logfields.Reason(OmitEmpty))
		b.recorder.IncSectionOmitted(OmitEmpty)
		return Entry{}, false, nil
	case len(templates) == 0:
		log.Warn("Snippet section has translations but no template; skipping",
			logfields.Reason(OmitNoTemplate), logfields.Count(len(translations)))
		b.recorder.IncSectionOmitted(OmitNoTemplate)
		return Entry{}, false, nil
	case len(translations) == 0:
		log.Info("Snippet template has no translations; leaving it out of the index",
			logfields.Reason(OmitNoTranslations), logfields.Template(templates[0]))
		b.recorder.IncSectionOmitted(OmitNoTranslations)
		return Entry{}, false, nil
	}

	return Entry{
		Template:     Template{Path: templates[0], Chapter: chapter, Section: section},
		Translations: translations,
	}, true, nil
}

// classify decides a file's role from its name. Hidden files are ignored. Template
// suffixes are checked before translation suffixes.
func (b *IndexBuilder) classify(name string) fileRole {
	if strings.HasPrefix(name, ".") {
		return roleIgnored
	}
	lower := strings.ToLower(name)
	for _, ext := range b.templateExtensions {
		if strings.HasSuffix(lower, ext) {
			return roleTemplate
		}
	}
	for _, ext := range b.translationExtensions {
		if strings.HasSuffix(lower, ext) {
			return roleTranslation
		}
	}
	return roleIgnored
}
