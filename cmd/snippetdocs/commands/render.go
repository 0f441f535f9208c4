package commands

import (
	"fmt"
	"io"
	"sort"

	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdocs/internal/snippets"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	PathFlags `embed:""`
	Language  string `short:"l" help:"Only print snippets for this language"`
	Chapter   string `help:"Only print snippets from this chapter"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadWithOverrides(root, r.PathFlags)
	if err != nil {
		return err
	}
	p, err := newPipeline(g, cfg, nil)
	if err != nil {
		return err
	}
	_, rendered, err := p.Render()
	if err != nil {
		return err
	}
	if r.Language != "" {
		if _, ok := rendered[r.Language]; !ok {
			return foundationerrors.NotFoundError("no snippets rendered for language").
				WithContext("language", r.Language).
				WithContext("available", rendered.Languages()).
				Build()
		}
	}
	return writeRendered(g.stdout(), rendered, r.Language, r.Chapter)
}

func writeRendered(w io.Writer, rendered snippets.Rendered, language, chapter string) error {
	for _, lang := range rendered.Languages() {
		if language != "" && lang != language {
			continue
		}
		for _, ch := range rendered.Chapters(lang) {
			if chapter != "" && ch != chapter {
				continue
			}
			names := rendered[lang][ch]
			for _, name := range sortedNames(names) {
				if _, err := fmt.Fprintf(w, "==> %s/%s/%s\n%s\n", lang, ch, name, names[name]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
