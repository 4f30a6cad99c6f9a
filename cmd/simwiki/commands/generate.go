package commands

import (
	"fmt"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Snapshot string `arg:"" name:"snapshot" help:"Path to the world snapshot JSON file"`
}

func (g *GenerateCmd) Run(globals *Global, root *CLI) error {
	if err := root.setup(globals); err != nil {
		return err
	}
	p, err := newPipeline(globals.Config, globals.Logger, OutputDir)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	report, err := p.generate(ctx, g.Snapshot)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Generated %d pages (%d entities skipped) in %s/\n", report.Pages, report.Skipped, OutputDir)
	return nil
}
