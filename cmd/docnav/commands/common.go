// Package commands implements the docnav CLI commands.
package commands

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
)

// DefaultConfigPath is used when -c is not given.
const DefaultConfigPath = "docnav.yaml"

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"docnav.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render RenderCmd `cmd:"" help:"Render the navigation markup"`
	Tree   TreeCmd   `cmd:"" help:"Print the navigation tree for debugging"`
	Check  CheckCmd  `cmd:"" help:"Build the navigation and report included and excluded pages"`
	Watch  WatchCmd  `cmd:"" help:"Rebuild the navigation whenever content changes"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; sets up logging from the flags. The
// configuration file may refine it once loaded.
func (c *CLI) AfterApply(g *Global) error {
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = newLogger(os.Stderr, level, config.NormalizeLogFormat(c.LogFormat))
	slog.SetDefault(g.Logger)
	return nil
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig loads the configuration file. A missing file at the default path
// falls back to the defaults so docnav works without any setup.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(c.Config); errors.Is(err, fs.ErrNotExist) && c.Config == DefaultConfigPath {
		g.Logger.Debug("No configuration file; using defaults")
		cfg = config.Default()
	} else {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flags win over the file.
	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	format := cfg.Logging.Format
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	g.Logger = newLogger(os.Stderr, level, format)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

// ContentFlags are shared by the commands that read content.
type ContentFlags struct {
	Content string `help:"Content directory (overrides content.directory)" type:"path"`
	Current string `help:"URL of the page being viewed; its item is marked active (overrides content.current)"`
}

func (f ContentFlags) apply(cfg *config.Config) {
	if f.Content != "" {
		cfg.Content.Directory = f.Content
	}
	if f.Current != "" {
		cfg.Content.Current = f.Current
	}
}

// runOnce loads the configuration, runs the pipeline once and returns the output.
func runOnce(ctx context.Context, g *Global, root *CLI, flags ContentFlags) (*pipeline.Output, *config.Config, error) {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return nil, nil, err
	}
	flags.apply(cfg)

	p, err := pipeline.New(cfg, pipeline.WithLogger(g.Logger), pipeline.WithRecorder(metrics.NoopRecorder{}))
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil {
			g.Logger.Warn("Plugin cleanup failed", logfields.Error(cerr))
		}
	}()

	out, err := p.Run(ctx, cfg.Content.Current)
	if err != nil {
		return nil, nil, err
	}
	return out, cfg, nil
}
