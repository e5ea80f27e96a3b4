package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/output"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/source"
)

// Builder runs builds of one configuration.
type Builder struct {
	cfg      config.Build
	registry *Registry
	fs       afero.Fs
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option customizes a Builder.
type Option func(*Builder)

// WithFs replaces the operating system filesystem, for tests.
func WithFs(fsys afero.Fs) Option { return func(b *Builder) { b.fs = fsys } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(b *Builder) { b.recorder = r } }

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option { return func(b *Builder) { b.logger = l } }

// NewBuilder returns a Builder for cfg dispatching through registry.
func NewBuilder(cfg config.Build, registry *Registry, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		registry: registry,
		fs:       afero.NewOsFs(),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type buildState struct {
	cfg      config.Build
	registry *Registry
	loader   *source.Loader
	writer   *output.Writer
	recorder metrics.Recorder
	logger   *slog.Logger
	report   *Report

	files []source.File
	items []content.Item
	first *page.Collection
	all   *page.Collection
}

// Build runs every stage once. The returned report is never nil, even when
// the build fails.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	buildID := uuid.NewString()
	logger := b.logger.With(logfields.BuildID(buildID))

	bs := &buildState{
		cfg:      b.cfg,
		registry: b.registry,
		loader:   source.NewLoader(b.fs),
		writer:   output.NewWriter(b.fs, b.cfg.Output, logger),
		recorder: b.recorder,
		logger:   logger,
		report:   newReport(buildID),
	}

	logger.Info("Build started", logfields.Input(b.cfg.Input), logfields.Output(b.cfg.Output))

	err := runStages(ctx, bs, []stageDef{
		{StageLoad, stageLoad},
		{StageParse, stageParse},
		{StageGenerate, stageGenerate},
		{StageAggregate, stageAggregate},
		{StageWrite, stageWrite},
		{StageStatic, stageStatic},
	})

	outcome := metrics.BuildOutcomeSuccess
	if err != nil {
		outcome = metrics.BuildOutcomeFailed
		var se *StageError
		if stderrors.As(err, &se) && se.Kind == StageErrorCanceled {
			outcome = metrics.BuildOutcomeCanceled
		}
	}
	bs.report.finish(outcome)
	b.recorder.ObserveBuildDuration(bs.report.Duration())
	b.recorder.IncBuildOutcome(outcome)

	if err != nil {
		logger.Error("Build failed", logfields.Error(err))
		return bs.report, err
	}

	for _, k := range page.Kinds {
		b.recorder.SetPages(string(k), bs.report.PagesByKind[k])
	}
	logger.Info("Build completed",
		logfields.Count(bs.report.TotalPages()),
		logfields.DurationMS(float64(bs.report.Duration().Microseconds())/1000),
		slog.String("summary", bs.report.Summary()))
	return bs.report, nil
}

func stageLoad(bs *buildState) error {
	files, err := bs.loader.Load(bs.cfg.Input)
	if err != nil {
		return err
	}
	bs.files = files
	bs.report.Files = len(files)
	bs.logger.Debug("Loaded source files", logfields.Count(len(files)))
	return nil
}

func stageParse(bs *buildState) error {
	for _, f := range bs.files {
		item, ok, err := bs.registry.Parsers.Parse(f)
		if err != nil {
			return err
		}
		if !ok {
			bs.report.Skipped++
			bs.logger.Debug("No parser supports file; skipping", logfields.File(f.Path))
			continue
		}
		for _, w := range item.Warnings() {
			bs.logger.Warn(w, logfields.File(f.Path))
		}
		bs.report.Parsed++
		bs.items = append(bs.items, item)
	}
	bs.recorder.AddSourceFiles(bs.report.Parsed, bs.report.Skipped)
	return nil
}

func stageGenerate(bs *buildState) error {
	bs.first = page.NewCollection()
	for _, item := range bs.items {
		g, pages, err := bs.registry.Generators.Generate(item, bs.first)
		if err != nil {
			return err
		}
		if err := bs.first.AddAll(producer(g.Name(), item.SourcePath()), pages); err != nil {
			return err
		}
		bs.logger.Debug("Generated pages",
			logfields.Generator(g.Name()),
			logfields.File(item.SourcePath()),
			logfields.Count(len(pages)))
	}
	return nil
}

// stageAggregate freezes the first-phase pages and runs the one-time
// generators over the snapshot. Their pages share one path namespace with
// the first phase.
func stageAggregate(bs *buildState) error {
	site := bs.first.Freeze()

	bs.all = page.NewCollection()
	for _, p := range site.Pages() {
		if err := bs.all.Add(bs.first.Producer(p.Path), p); err != nil {
			return err
		}
	}

	for _, g := range bs.registry.OneTime {
		t0 := time.Now()
		pages, err := g.Generate(site)
		if err != nil {
			return annotate(err, errors.RenderError("one-time generator failed"), errors.ErrorContext{contextGenerator: g.Name()})
		}
		if err := bs.all.AddAll(g.Name(), pages); err != nil {
			return err
		}
		bs.logger.Debug("One-time generator finished",
			logfields.Generator(g.Name()),
			logfields.Count(len(pages)),
			logfields.DurationMS(float64(time.Since(t0).Microseconds())/1000))
	}
	return nil
}

func stageWrite(bs *buildState) error {
	if err := bs.writer.Prepare(bs.cfg.RemoveOutput); err != nil {
		return err
	}
	pages := bs.all.Pages()
	if err := bs.writer.WritePages(pages); err != nil {
		return err
	}
	bs.report.Pages = pages
	for _, p := range pages {
		bs.report.PagesByKind[p.Kind()]++
	}
	bs.logger.Info("Wrote pages", logfields.Count(len(pages)), logfields.Output(bs.cfg.Output))
	return nil
}

func stageStatic(bs *buildState) error {
	n, err := bs.writer.CopyStatic(bs.cfg.Input, bs.cfg.StaticDirs)
	bs.report.StaticFiles = n
	if err != nil {
		return err
	}
	bs.logger.Debug("Copied static files", logfields.Count(n))
	return nil
}

func producer(generator, source string) string {
	return fmt.Sprintf("%s(%s)", generator, source)
}
