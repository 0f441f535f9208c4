package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
)

// DefaultPath is the configuration file picked up when --config is not given.
const DefaultPath = "snippetdocs.yaml"

// Config represents the application configuration.
type Config struct {
	Snippets SnippetsConfig `yaml:"snippets"`
	Docs     DocsConfig     `yaml:"docs"`
	Metrics  MetricsConfig  `yaml:"metrics,omitempty"`
}

// SnippetsConfig describes the snippet source tree (<root>/<chapter>/<section>/...).
type SnippetsConfig struct {
	Root                  string   `yaml:"root"`
	TemplateExtensions    []string `yaml:"template_extensions,omitempty"`
	TranslationExtensions []string `yaml:"translation_extensions,omitempty"`
}

// DocsConfig describes the per-language documentation tree (<root>/<language>/*.md).
type DocsConfig struct {
	Root               string   `yaml:"root"`
	MarkdownExtensions []string `yaml:"markdown_extensions,omitempty"`
	// Output, when set, receives expanded documents instead of rewriting Root in place.
	Output string `yaml:"output,omitempty"`
}

// MetricsConfig controls the optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns a configuration populated with default values only.
func Default() *Config {
	cfg := &Config{}
	_ = applyDefaults(cfg)
	return cfg
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, foundationerrors.ConfigError("configuration file not found").
			WithPath(configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithPath(configPath).
			Build()
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			WithPath(configPath).
			Build()
	}

	if err := applyDefaults(&config); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadOptional behaves like Load but falls back to defaults when the file does not exist.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		loadEnvFile()
		return Default(), nil
	}
	return Load(configPath)
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return foundationerrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithPath(configPath).
			Build()
	}

	exampleConfig := Default()
	exampleConfig.Metrics.Textfile = "${SNIPPETDOCS_METRICS_TEXTFILE}"

	data, err := yaml.Marshal(exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write config file").
			Fatal().
			WithPath(configPath).
			Build()
	}

	return nil
}
