package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/snippetdocs/internal/config"
	"git.home.luguber.info/inful/snippetdocs/internal/metrics"
	"git.home.luguber.info/inful/snippetdocs/internal/pipeline"
)

// Global carries process-wide state shared by subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) stderr() io.Writer {
	if g == nil || g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (defaults apply when ${default} is absent)" default:"snippetdocs.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" default:"withargs" help:"Render snippets and expand them into the documentation (default)"`
	Index  IndexCmd  `cmd:"" help:"Print the discovered snippet index without rendering"`
	Render RenderCmd `cmd:"" help:"Print rendered snippets without touching any document"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
	Watch  WatchCmd  `cmd:"" help:"Rebuild on every change to snippets or documents"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// PathFlags override the snippet, docs and output locations from the config file.
type PathFlags struct {
	Snippets string `help:"Snippet root directory (overrides snippets.root)" type:"path"`
	Docs     string `help:"Documentation root directory (overrides docs.root)" type:"path"`
	Output   string `short:"o" help:"Write expanded documents here instead of rewriting docs in place" type:"path"`
}

// Apply copies non-empty flags onto cfg.
func (f PathFlags) Apply(cfg *config.Config) {
	if f.Snippets != "" {
		cfg.Snippets.Root = f.Snippets
	}
	if f.Docs != "" {
		cfg.Docs.Root = f.Docs
	}
	if f.Output != "" {
		cfg.Docs.Output = f.Output
	}
}

// LoadConfig loads the configuration at path. The default path is optional; an
// explicitly named file must exist.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" || path == config.DefaultPath {
		return config.LoadOptional(config.DefaultPath)
	}
	return config.Load(path)
}

// loadWithOverrides loads the configuration, applies flag overrides and validates the result.
func loadWithOverrides(root *CLI, flags PathFlags) (*config.Config, error) {
	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return nil, err
	}
	flags.Apply(cfg)
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRecorder returns a Prometheus recorder when a textfile export is configured.
func newRecorder(cfg *config.Config) (metrics.Recorder, *metrics.PrometheusRecorder) {
	if cfg.Metrics.Textfile == "" {
		return metrics.NoopRecorder{}, nil
	}
	pr := metrics.NewPrometheusRecorder(nil)
	return pr, pr
}

func writeMetrics(g *Global, cfg *config.Config, pr *metrics.PrometheusRecorder) {
	if pr == nil {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile, pr.Registry()); err != nil {
		g.logger().Warn("Failed to write metrics textfile", slog.String("path", cfg.Metrics.Textfile), slog.String("error", err.Error()))
	}
}

func newPipeline(g *Global, cfg *config.Config, rec metrics.Recorder) (*pipeline.Pipeline, error) {
	return pipeline.New(cfg,
		pipeline.WithRecorder(rec),
		pipeline.WithLogger(g.logger()),
		pipeline.WithDiagnostics(g.stderr()),
	)
}
