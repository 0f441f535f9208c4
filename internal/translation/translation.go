// Package translation decodes per-language translation files into the data maps
// that snippet templates are rendered against.
package translation

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Parser decodes translation data into a nested mapping.
type Parser interface {
	Parse(data []byte) (map[string]any, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(data []byte) (map[string]any, error)

// Parse calls f(data).
func (f ParserFunc) Parse(data []byte) (map[string]any, error) { return f(data) }

// TOML parses TOML documents.
var TOML Parser = ParserFunc(func(data []byte) (map[string]any, error) {
	out := map[string]any{}
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
})

// YAML parses YAML documents. The top level must be a mapping.
var YAML Parser = ParserFunc(func(data []byte) (map[string]any, error) {
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
})

// Registry selects a Parser by file extension.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry returns a registry with no parsers registered.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// DefaultRegistry returns a registry with TOML (.toml) and YAML (.yaml, .yml) parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".toml", TOML)
	r.Register(".yaml", YAML)
	r.Register(".yml", YAML)
	return r
}

// Register associates ext (with leading dot, case-insensitive) with p.
func (r *Registry) Register(ext string, p Parser) {
	r.parsers[strings.ToLower(ext)] = p
}

// Extensions lists registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether a parser is registered for path's extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.parsers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Parse decodes data read from path with the parser registered for its extension.
func (r *Registry) Parse(path string, data []byte) (map[string]any, error) {
	ext := strings.ToLower(filepath.Ext(path))
	p, ok := r.parsers[ext]
	if !ok {
		return nil, fmt.Errorf("no translation parser for extension %q", ext)
	}
	out, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// Language derives a translation's language from its filename stem:
// "docs/snippets/intro/hello/en.toml" -> "en".
func Language(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
