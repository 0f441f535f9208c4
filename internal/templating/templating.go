// Package templating is the placeholder engine shared by snippet templates and
// markdown documents.
//
// Placeholders use mustache syntax: {{ name }}, with dotted names reaching into
// nested data ({{ print.fn }}) and hyphens allowed in names ({{ hello-world }}).
// Output is never HTML-escaped, and a placeholder whose key is absent from the data
// is a render error rather than an empty string.
package templating

import (
	"fmt"

	"github.com/cbroglie/mustache"
)

func init() {
	mustache.AllowMissingVariables = false
}

// Template is a compiled placeholder template.
type Template struct {
	source string
	tmpl   *mustache.Template
}

// Compile parses text into a Template.
func Compile(text string) (*Template, error) {
	tmpl, err := mustache.ParseStringRaw(text, true)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{source: text, tmpl: tmpl}, nil
}

// Render expands the template against data. Every referenced key must be present.
func (t *Template) Render(data map[string]any) (string, error) {
	out, err := t.tmpl.Render(data)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// Source returns the text the template was compiled from.
func (t *Template) Source() string {
	return t.source
}

// Placeholders lists the variable names referenced anywhere in the template,
// including inside sections, in first-seen order without duplicates.
func (t *Template) Placeholders() []string {
	seen := make(map[string]struct{})
	var names []string
	var walk func(tags []mustache.Tag)
	walk = func(tags []mustache.Tag) {
		for _, tag := range tags {
			switch tag.Type() {
			case mustache.Variable:
				if _, ok := seen[tag.Name()]; !ok {
					seen[tag.Name()] = struct{}{}
					names = append(names, tag.Name())
				}
			case mustache.Section, mustache.InvertedSection:
				walk(tag.Tags())
			}
		}
	}
	walk(t.tmpl.Tags())
	return names
}
