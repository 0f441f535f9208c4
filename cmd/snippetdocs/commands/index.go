package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/snippetdocs/internal/snippets"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	PathFlags `embed:""`
	Format    string `short:"f" help:"Output format (text, json, yaml)" enum:"text,json,yaml" default:"text"`
}

type indexView struct {
	Root     string        `json:"root" yaml:"root"`
	Chapters []chapterView `json:"chapters" yaml:"chapters"`
}

type chapterView struct {
	Name     string        `json:"name" yaml:"name"`
	Sections []sectionView `json:"sections" yaml:"sections"`
}

type sectionView struct {
	Snippet      string            `json:"snippet" yaml:"snippet"`
	Template     string            `json:"template" yaml:"template"`
	Translations []translationView `json:"translations" yaml:"translations"`
}

type translationView struct {
	Language string `json:"language" yaml:"language"`
	Path     string `json:"path" yaml:"path"`
}

func (i *IndexCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadWithOverrides(root, i.PathFlags)
	if err != nil {
		return err
	}
	p, err := newPipeline(g, cfg, nil)
	if err != nil {
		return err
	}
	idx, err := p.Index()
	if err != nil {
		return err
	}
	return writeIndex(g.stdout(), i.Format, idx)
}

func newIndexView(idx *snippets.Index) indexView {
	view := indexView{Root: idx.Root, Chapters: []chapterView{}}
	for _, ch := range idx.Chapters {
		cv := chapterView{Name: ch.Name, Sections: []sectionView{}}
		for _, e := range ch.Entries {
			sv := sectionView{Snippet: e.Template.SnippetName(), Template: e.Template.Path}
			for _, tr := range e.Translations {
				sv.Translations = append(sv.Translations, translationView{Language: tr.Language, Path: tr.Path})
			}
			cv.Sections = append(cv.Sections, sv)
		}
		view.Chapters = append(view.Chapters, cv)
	}
	return view
}

func writeIndex(w io.Writer, format string, idx *snippets.Index) error {
	view := newIndexView(idx)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	default:
		fmt.Fprintf(w, "Snippet root: %s\n", view.Root)
		for _, ch := range view.Chapters {
			fmt.Fprintf(w, "%s/\n", ch.Name)
			for _, s := range ch.Sections {
				fmt.Fprintf(w, "  %s  %s\n", s.Snippet, s.Template)
				for _, tr := range s.Translations {
					fmt.Fprintf(w, "    %-6s %s\n", tr.Language, tr.Path)
				}
			}
		}
		fmt.Fprintf(w, "%d templates, %d translations\n", idx.TemplateCount(), idx.TranslationCount())
		return nil
	}
}
