package config

import (
	"path/filepath"
	"strings"

	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdocs/internal/util/sets"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSnippets(); err != nil {
		return err
	}
	if err := cv.validateDocs(); err != nil {
		return err
	}
	return cv.validatePaths()
}

func (cv *configurationValidator) validateSnippets() error {
	s := cv.config.Snippets
	if strings.TrimSpace(s.Root) == "" {
		return invalid("snippets.root must not be empty", "snippets.root", s.Root)
	}
	if len(s.TemplateExtensions) == 0 {
		return invalid("snippets.template_extensions must not be empty", "snippets.template_extensions", s.TemplateExtensions)
	}
	if len(s.TranslationExtensions) == 0 {
		return invalid("snippets.translation_extensions must not be empty", "snippets.translation_extensions", s.TranslationExtensions)
	}
	if err := validateExtensions("snippets.template_extensions", s.TemplateExtensions); err != nil {
		return err
	}
	if err := validateExtensions("snippets.translation_extensions", s.TranslationExtensions); err != nil {
		return err
	}
	overlap := sets.New(s.TemplateExtensions...).Intersect(sets.New(s.TranslationExtensions...))
	if len(overlap) > 0 {
		return invalid("an extension cannot mark both templates and translations", "extension", sets.Sorted(overlap))
	}
	return nil
}

func (cv *configurationValidator) validateDocs() error {
	d := cv.config.Docs
	if strings.TrimSpace(d.Root) == "" {
		return invalid("docs.root must not be empty", "docs.root", d.Root)
	}
	return validateExtensions("docs.markdown_extensions", d.MarkdownExtensions)
}

// validatePaths rejects an output tree that would overwrite the sources it reads.
func (cv *configurationValidator) validatePaths() error {
	out := cv.config.Docs.Output
	if out == "" {
		return nil
	}
	if filepath.Clean(out) == filepath.Clean(cv.config.Docs.Root) {
		return invalid("docs.output must differ from docs.root (leave it empty for in-place expansion)", "docs.output", out)
	}
	return nil
}

func validateExtensions(field string, exts []string) error {
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") || len(e) < 2 {
			return invalid("extensions must start with a dot", field, e)
		}
	}
	return nil
}

func invalid(msg, field string, value any) error {
	return foundationerrors.ValidationError(msg).
		WithContext("field", field).
		WithContext("value", value).
		Build()
}
