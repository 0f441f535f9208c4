package expand

import (
	"errors"

	"git.home.luguber.info/inful/snippetdocs/internal/templating"
)

// ErrLanguageDirNotFound indicates a language has rendered snippets but no
// documentation directory.
var ErrLanguageDirNotFound = errors.New("documentation directory not found for language")

// Expansion is a markdown document compiled once from its source text.
// Placeholders are always taken from the source, never from inserted snippets.
type Expansion struct {
	tmpl  *templating.Template
	names []string
}

// ParseDocument compiles the placeholders of a markdown document.
func ParseDocument(content string) (*Expansion, error) {
	tmpl, err := templating.Compile(content)
	if err != nil {
		return nil, err
	}
	return &Expansion{tmpl: tmpl, names: tmpl.Placeholders()}, nil
}

// Placeholders lists the snippet names the document references.
func (x *Expansion) Placeholders() []string {
	return x.names
}

// Resolve looks every placeholder up in the chapters, in the given order. The
// first chapter defining a name supplies its snippet. Names no chapter defines
// are returned as missing, in document order.
func (x *Expansion) Resolve(chapterNames []string, chapters map[string]map[string]string) (map[string]any, []string) {
	data := make(map[string]any, len(x.names))
	var missing []string
	for _, name := range x.names {
		found := false
		for _, chapter := range chapterNames {
			if text, ok := chapters[chapter][name]; ok {
				data[name] = text
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return data, missing
}

// Render substitutes data into the document in a single pass. A document
// without placeholders is returned unchanged.
func (x *Expansion) Render(data map[string]any) (string, error) {
	if len(x.names) == 0 {
		return x.tmpl.Source(), nil
	}
	return x.tmpl.Render(data)
}
