package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/simwiki/internal/config"
	"git.home.luguber.info/inful/simwiki/internal/logfields"
	"git.home.luguber.info/inful/simwiki/internal/metrics"
	"git.home.luguber.info/inful/simwiki/internal/templates"
	"git.home.luguber.info/inful/simwiki/internal/wiki"
	"git.home.luguber.info/inful/simwiki/internal/workspace"
)

// OutputDir is where the wiki is written, relative to the working directory.
const OutputDir = "output"

// stdout receives user-facing command output.
var stdout io.Writer = os.Stdout

// Global carries state shared by subcommands once configuration is loaded.
type Global struct {
	Logger *slog.Logger
	Config *config.Config
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"simwiki.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate the wiki from a snapshot file (default command)"`
	Verify   VerifyCmd   `cmd:"" help:"Check that every internal link in the generated wiki resolves"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the wiki whenever the snapshot file changes"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing and installs a baseline logger.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// setup loads the configuration and replaces the baseline logger with the configured one.
// The default config file is optional; an explicitly named one must exist.
func (c *CLI) setup(g *Global) error {
	var (
		cfg *config.Config
		err error
	)
	if c.Config == config.DefaultPath {
		cfg, err = config.LoadOrDefault(c.Config)
	} else {
		cfg, err = config.Load(c.Config)
	}
	if err != nil {
		return err
	}

	logger := cfg.Logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(logger)
	g.Config = cfg
	g.Logger = logger
	return nil
}

// pipeline bundles a generator with the registry backing its metrics.
type pipeline struct {
	generator *wiki.Generator
	registry  *prom.Registry
	textfile  string
	logger    *slog.Logger
}

func newPipeline(cfg *config.Config, logger *slog.Logger, outputDir string) (*pipeline, error) {
	renderer, err := templates.NewRenderer(templates.Options{
		SiteTitle: cfg.Site.Title,
		Markdown:  cfg.Generation.RenderMarkdown(),
	})
	if err != nil {
		return nil, err
	}

	p := &pipeline{textfile: cfg.Metrics.Textfile, logger: logger}
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if p.textfile != "" {
		p.registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(p.registry)
	}

	p.generator = wiki.NewGenerator(renderer, workspace.NewManager(outputDir),
		wiki.WithRecorder(recorder),
		wiki.WithPolicy(cfg.Generation.OnError),
		wiki.WithLinkVerification(cfg.Generation.VerifyLinks),
		wiki.WithLogger(logger),
	)
	return p, nil
}

// generate runs one generation and exports metrics whatever the outcome.
func (p *pipeline) generate(ctx context.Context, snapshotPath string) (*wiki.Report, error) {
	report, err := p.generator.GenerateFile(ctx, snapshotPath)
	p.exportMetrics()
	return report, err
}

func (p *pipeline) exportMetrics() {
	if p.registry == nil {
		return
	}
	if err := metrics.WriteTextfile(p.textfile, p.registry); err != nil {
		p.logger.Warn("Failed to export metrics", logfields.Path(p.textfile), logfields.Error(err))
	}
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
