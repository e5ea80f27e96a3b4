package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: sitebuilder.yaml, optional)" type:"path"`
	Verbose int              `short:"v" type:"counter" help:"Increase log verbosity (-v debug, -vv debug with source locations)"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Build the site from the input directory (default command)"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; sets up a default logger until the
// configuration is known.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	g.Logger = NewLogger(os.Stderr, config.LogConfig{Level: config.LogLevelInfo, Format: config.LogFormatText}, c.Verbose)
	slog.SetDefault(g.Logger)
	return nil
}

// ConfigPath returns the configuration file to read and whether it must exist.
// An explicitly named file is required; the default one is optional.
func (c *CLI) ConfigPath() (string, bool) {
	if c.Config != "" {
		return c.Config, true
	}
	return config.DefaultFile, false
}

// NewLogger builds the process logger from the log configuration. Each -v
// raises verbosity: one lowers the level to debug, two also adds source
// locations.
func NewLogger(w io.Writer, cfg config.LogConfig, verbose int) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level.SlogLevel()}
	if verbose > 0 {
		opts.Level = slog.LevelDebug
	}
	if verbose > 1 {
		opts.AddSource = true
	}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
