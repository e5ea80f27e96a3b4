package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/manifest"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/pipeline"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Input           string `short:"i" help:"Content directory (overrides config input, default: content)"`
	Output          string `short:"o" help:"Output directory (overrides config output, default: public)"`
	DisableRmTarget bool   `short:"d" name:"disable-rm-target" help:"Keep existing files in the output directory"`
	MetricsFile     string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after the build"`
	Manifest        string `name:"manifest" help:"Write a JSON build manifest to this file after a successful build"`
}

// Options carries the build-only settings that do not belong in the configuration file.
type Options struct {
	Fs          afero.Fs
	Logger      *slog.Logger
	MetricsFile string
	Manifest    string
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	path, required := root.ConfigPath()
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	logger := NewLogger(os.Stderr, cfg.Log, root.Verbose)
	slog.SetDefault(logger)
	g.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = RunBuild(ctx, cfg, Options{
		Logger:      logger,
		MetricsFile: b.MetricsFile,
		Manifest:    b.Manifest,
	})
	return err
}

// apply layers the command-line flags over cfg and revalidates it.
func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.Input != "" {
		cfg.Input = b.Input
	}
	if b.Output != "" {
		cfg.Output = b.Output
	}
	if b.DisableRmTarget {
		cfg.RemoveOutput = false
	}
	cfg.Normalize()
	return cfg.Validate()
}

// RunBuild builds the site described by cfg and writes the optional metrics
// textfile and manifest.
func RunBuild(ctx context.Context, cfg *config.Config, opts Options) (*pipeline.Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := site.NewRegistry(cfg)
	if err != nil {
		return nil, err
	}

	builderOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	if opts.Fs != nil {
		builderOpts = append(builderOpts, pipeline.WithFs(opts.Fs))
	}
	var recorder *metrics.PrometheusRecorder
	if opts.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		builderOpts = append(builderOpts, pipeline.WithRecorder(recorder))
	}

	report, buildErr := pipeline.NewBuilder(cfg.Build, registry, builderOpts...).Build(ctx)

	// Metrics describe failed builds too.
	if recorder != nil {
		if err := recorder.WriteTextfile(opts.MetricsFile); err != nil {
			if buildErr == nil {
				return report, err
			}
			logger.Warn("Failed to write metrics file", logfields.Path(opts.MetricsFile), logfields.Error(err))
		}
	}
	if buildErr != nil {
		return report, buildErr
	}

	if opts.Manifest != "" {
		m, err := manifest.FromReport(report, cfg)
		if err != nil {
			return report, err
		}
		if err := m.WriteFile(opts.Manifest); err != nil {
			return report, err
		}
		logger.Info("Manifest written", logfields.Path(opts.Manifest))
	}
	return report, nil
}
