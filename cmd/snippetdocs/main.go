package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/snippetdocs/cmd/snippetdocs/commands"
	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdocs/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("snippetdocs"),
		kong.Description("Render per-language code snippets and expand them into markdown documentation."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	global := &commands.Global{
		Logger: slog.Default(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if err := parser.Run(global, cli); err != nil {
		foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
