package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/snippetdocs/internal/config"
	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdocs/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	PathFlags `embed:""`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadWithOverrides(root, w.PathFlags)
	if err != nil {
		return err
	}
	watcher, err := NewWatcher(g, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watcher.Run(ctx)
}

// NewWatcher builds a watcher that reruns the full build. In-place expansion
// consumes placeholders, so watching requires an output directory.
func NewWatcher(g *Global, cfg *config.Config) (*watch.Watcher, error) {
	if cfg.Docs.Output == "" {
		return nil, foundationerrors.ValidationError("watch requires an output directory (docs.output or --output)").
			WithContext("field", "docs.output").
			Build()
	}
	build := func(ctx context.Context) error {
		_, err := RunBuild(ctx, g, cfg)
		return err
	}
	return watch.New(build, []string{cfg.Snippets.Root, cfg.Docs.Root},
		watch.WithExclude(cfg.Docs.Output),
		watch.WithLogger(g.logger()),
	), nil
}
