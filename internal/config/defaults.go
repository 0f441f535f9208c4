package config

import (
	"fmt"
	"strings"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SnippetsDefaultApplier handles snippet tree defaults.
type SnippetsDefaultApplier struct{}

func (s *SnippetsDefaultApplier) Domain() string { return "snippets" }

func (s *SnippetsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Snippets.Root == "" {
		cfg.Snippets.Root = "./docs/snippets"
	}
	if len(cfg.Snippets.TemplateExtensions) == 0 {
		cfg.Snippets.TemplateExtensions = []string{".tmpl", ".zig"}
	}
	if len(cfg.Snippets.TranslationExtensions) == 0 {
		cfg.Snippets.TranslationExtensions = []string{".toml", ".yaml", ".yml"}
	}
	cfg.Snippets.TemplateExtensions = normalizeExtensions(cfg.Snippets.TemplateExtensions)
	cfg.Snippets.TranslationExtensions = normalizeExtensions(cfg.Snippets.TranslationExtensions)
	return nil
}

// DocsDefaultApplier handles documentation tree defaults.
type DocsDefaultApplier struct{}

func (d *DocsDefaultApplier) Domain() string { return "docs" }

func (d *DocsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Docs.Root == "" {
		cfg.Docs.Root = "./docs"
	}
	if len(cfg.Docs.MarkdownExtensions) == 0 {
		cfg.Docs.MarkdownExtensions = []string{".md", ".mdx"}
	}
	cfg.Docs.MarkdownExtensions = normalizeExtensions(cfg.Docs.MarkdownExtensions)
	return nil
}

// compositeDefaultApplier runs every domain applier in order.
type compositeDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers.
func NewDefaultApplier() DefaultApplier {
	return &compositeDefaultApplier{
		appliers: []DefaultApplier{
			&SnippetsDefaultApplier{},
			&DocsDefaultApplier{},
		},
	}
}

func (c *compositeDefaultApplier) Domain() string { return "all" }

func (c *compositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("%s defaults: %w", applier.Domain(), err)
		}
	}
	return nil
}

func applyDefaults(cfg *Config) error {
	return NewDefaultApplier().ApplyDefaults(cfg)
}

// normalizeExtensions lower-cases and trims extensions. A missing leading dot is kept
// missing so validation can report it.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
