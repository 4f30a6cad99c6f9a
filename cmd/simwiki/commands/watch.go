package commands

import (
	"context"

	"git.home.luguber.info/inful/simwiki/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Snapshot string `arg:"" name:"snapshot" help:"Path to the world snapshot JSON file"`
}

func (w *WatchCmd) Run(globals *Global, root *CLI) error {
	if err := root.setup(globals); err != nil {
		return err
	}
	p, err := newPipeline(globals.Config, globals.Logger, OutputDir)
	if err != nil {
		return err
	}

	watcher, err := watch.New(w.Snapshot, func(ctx context.Context) error {
		_, genErr := p.generate(ctx, w.Snapshot)
		return genErr
	}, watch.WithLogger(globals.Logger))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return watcher.Run(ctx)
}
