package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"git.home.luguber.info/inful/snippetdocs/internal/config"
	"git.home.luguber.info/inful/snippetdocs/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	PathFlags   `embed:""`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile format (overrides metrics.textfile)" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadWithOverrides(root, b.PathFlags)
	if err != nil {
		return err
	}
	if b.MetricsFile != "" {
		cfg.Metrics.Textfile = b.MetricsFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = RunBuild(ctx, g, cfg)
	return err
}

// RunBuild runs one full pipeline and prints a short summary on stdout.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config) (*pipeline.Result, error) {
	rec, pr := newRecorder(cfg)
	defer writeMetrics(g, cfg, pr)

	p, err := newPipeline(g, cfg, rec)
	if err != nil {
		return nil, err
	}
	result, err := p.Run(ctx)
	if err != nil {
		return result, err
	}

	out := g.stdout()
	fmt.Fprintf(out, "Rendered %d snippets, expanded %d documents", result.Rendered.Count(), len(result.Report.Documents))
	if len(result.Report.Languages) > 0 {
		fmt.Fprintf(out, " (%s)", strings.Join(result.Report.Languages, ", "))
	}
	fmt.Fprintln(out)
	if len(result.Report.MissingLanguages) > 0 {
		fmt.Fprintf(out, "Skipped languages without documentation: %s\n", strings.Join(result.Report.MissingLanguages, ", "))
	}
	return result, nil
}
