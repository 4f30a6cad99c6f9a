package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/simwiki/internal/linkverify"
	"git.home.luguber.info/inful/simwiki/internal/logfields"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct{}

func (v *VerifyCmd) Run(globals *Global, root *CLI) error {
	if err := root.setup(globals); err != nil {
		return err
	}
	return runVerify(globals, OutputDir)
}

func runVerify(globals *Global, dir string) error {
	ctx, cancel := signalContext()
	defer cancel()

	report, err := linkverify.VerifyTree(ctx, dir)
	if err != nil {
		return err
	}
	globals.Logger.Info("Link verification finished",
		logfields.Output(dir),
		logfields.Count(report.Links),
		slog.Int("pages", report.Pages),
		slog.Int("broken", len(report.Broken)))

	for _, b := range report.Broken {
		_, _ = fmt.Fprintf(stdout, "%s: broken link %q (%s) -> %s\n", b.Page, b.URL, b.Text, b.Target)
	}
	if report.OK() {
		_, _ = fmt.Fprintf(stdout, "All %d links in %d pages resolve\n", report.Links, report.Pages)
	}
	return report.Err()
}
