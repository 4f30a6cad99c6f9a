package wiki

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/simwiki/internal/config"
	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/linkverify"
	"git.home.luguber.info/inful/simwiki/internal/logfields"
	"git.home.luguber.info/inful/simwiki/internal/metrics"
	"git.home.luguber.info/inful/simwiki/internal/snapshot"
	"git.home.luguber.info/inful/simwiki/internal/templates"
	"git.home.luguber.info/inful/simwiki/internal/workspace"
)

// Renderer renders a named template.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Generator runs complete wiki generations into one output directory.
type Generator struct {
	renderer    Renderer
	writer      *workspace.Manager
	recorder    metrics.Recorder
	policy      config.OnErrorPolicy
	verifyLinks bool
	logger      *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithPolicy sets how page failures are handled.
func WithPolicy(p config.OnErrorPolicy) Option {
	return func(g *Generator) { g.policy = p }
}

// WithLinkVerification checks the generated tree for broken links after each run.
func WithLinkVerification(enabled bool) Option {
	return func(g *Generator) { g.verifyLinks = enabled }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator returns a generator that aborts on the first failure by default.
func NewGenerator(renderer Renderer, writer *workspace.Manager, opts ...Option) *Generator {
	g := &Generator{
		renderer: renderer,
		writer:   writer,
		recorder: metrics.NoopRecorder{},
		policy:   config.OnErrorAbort,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Report summarizes one run.
type Report struct {
	RunID       string
	Entities    int
	Pages       int
	Skipped     int
	Failed      int
	Duration    time.Duration
	BrokenLinks []linkverify.BrokenLink
}

// GenerateFile loads the snapshot at path and runs a generation. Nothing is
// written when the snapshot cannot be loaded.
func (g *Generator) GenerateFile(ctx context.Context, path string) (*Report, error) {
	snap, err := snapshot.Load(path)
	if err != nil {
		g.recorder.IncRunOutcome(metrics.OutcomeFailed)
		return nil, err
	}
	g.logger.Info("Loaded snapshot", logfields.Snapshot(path), logfields.Count(snap.Len()))
	return g.Run(ctx, snap)
}

// Run writes one page per dispatched entity in snapshot order, then the index.
func (g *Generator) Run(ctx context.Context, snap *snapshot.Snapshot) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString(), Entities: snap.Len()}
	log := g.logger.With(logfields.RunID(report.RunID))

	err := g.run(ctx, log, snap, report)

	report.Duration = time.Since(start)
	g.recorder.ObserveRunDuration(report.Duration)
	switch {
	case err == nil:
		g.recorder.IncRunOutcome(metrics.OutcomeSuccess)
		log.Info("Wiki generated",
			logfields.Output(g.writer.Root()),
			logfields.Count(report.Pages),
			slog.Int("skipped", report.Skipped),
			logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	case ctx.Err() != nil:
		g.recorder.IncRunOutcome(metrics.OutcomeCanceled)
	default:
		g.recorder.IncRunOutcome(metrics.OutcomeFailed)
	}
	return report, err
}

func (g *Generator) run(ctx context.Context, log *slog.Logger, snap *snapshot.Snapshot, report *Report) error {
	g.recorder.SetEntities(snap.Len())
	if err := g.writer.Create(); err != nil {
		return err
	}

	var firstFailure error
	for _, e := range snap.Entities() {
		if err := ctx.Err(); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryRuntime, "generation canceled").Build()
		}

		written, err := g.generateEntity(log, snap, e)
		switch {
		case err == nil && written:
			report.Pages++
		case err == nil:
			report.Skipped++
		case g.policy == config.OnErrorSkip:
			report.Failed++
			if firstFailure == nil {
				firstFailure = err
			}
			log.Warn("Page generation failed, continuing",
				logfields.EntityID(int(e.ID)),
				logfields.Kind(e.Kind.String()),
				logfields.Policy(string(g.policy)),
				logfields.Error(err))
		default:
			report.Failed++
			return err
		}
	}

	if err := g.writeIndex(log, snap); err != nil {
		return err
	}

	if g.verifyLinks {
		if err := g.verify(ctx, log, report); err != nil {
			return err
		}
	}

	if firstFailure != nil {
		return ferrors.WrapError(firstFailure, ferrors.GetCategory(firstFailure), "some pages failed to generate").
			WithContext("failed", report.Failed).
			Build()
	}
	return nil
}

// generateEntity shapes, renders and writes one entity page. written is false
// when the entity's kind has no page.
func (g *Generator) generateEntity(log *slog.Logger, snap *snapshot.Snapshot, e *snapshot.Entity) (bool, error) {
	kind := e.Kind.String()
	start := time.Now()

	page, ok, err := Dispatch(snap, e)
	if err == nil && !ok {
		g.recorder.IncPageResult(kind, metrics.ResultSkipped)
		log.Debug("Skipping entity", logfields.EntityID(int(e.ID)), logfields.Kind(kind))
		return false, nil
	}

	if err == nil {
		var html string
		if html, err = g.renderer.Render(page.Template, page.Data); err == nil {
			var path string
			if path, err = g.writer.WritePage(int(e.ID), html); err == nil {
				log.Debug("Wrote entity page",
					logfields.EntityID(int(e.ID)),
					logfields.EntityName(e.Name),
					logfields.Kind(kind),
					logfields.Path(path))
			}
		}
	}

	g.recorder.ObservePageDuration(kind, time.Since(start))
	if err != nil {
		g.recorder.IncPageResult(kind, metrics.ResultFailed)
		return false, annotate(err, e)
	}
	g.recorder.IncPageResult(kind, metrics.ResultSuccess)
	return true, nil
}

func (g *Generator) writeIndex(log *slog.Logger, snap *snapshot.Snapshot) error {
	html, err := g.renderer.Render(templates.Index, BuildIndex(snap))
	if err != nil {
		return err
	}
	path, err := g.writer.WriteIndex(html)
	if err != nil {
		return err
	}
	log.Debug("Wrote index", logfields.Path(path))
	return nil
}

func (g *Generator) verify(ctx context.Context, log *slog.Logger, report *Report) error {
	vr, err := linkverify.VerifyTree(ctx, g.writer.Root())
	if err != nil {
		return err
	}
	report.BrokenLinks = vr.Broken
	g.recorder.SetBrokenLinks(len(vr.Broken))
	for _, b := range vr.Broken {
		log.Warn("Broken link", logfields.Path(b.Page), slog.String("url", b.URL))
	}
	return vr.Err()
}

// annotate attaches the failing entity to err without overwriting existing context.
func annotate(err error, e *snapshot.Entity) error {
	ce, ok := ferrors.AsClassified(err)
	if !ok {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "generate page").
			WithContext("entity_id", int(e.ID)).
			WithContext("kind", e.Kind.String()).
			Build()
	}
	if _, has := ce.Context().Get("entity_id"); !has {
		ce = ce.WithContext("entity_id", int(e.ID))
	}
	return ce.WithContext("kind", e.Kind.String())
}
