package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/simwiki/cmd/simwiki/commands"
	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/version"
)

func main() {
	var cli commands.CLI
	globals := &commands.Global{}

	parser := kong.Parse(&cli,
		kong.Name("simwiki"),
		kong.Description("Generate a static HTML wiki from a simulation world snapshot."),
		kong.UsageOnError(),
		kong.Bind(globals),
		kong.Vars{"version": version.String()},
	)

	if err := parser.Run(&cli); err != nil {
		logger := globals.Logger
		if logger == nil {
			logger = slog.Default()
		}
		ferrors.NewCLIErrorAdapter(cli.Verbose, logger).HandleError(err)
	}
}
