// Package pipeline wires configuration, content loading and the plugin host into
// one navigation run: load pages, build the tree, render the template variables.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	nav "git.home.luguber.info/inful/docnav/internal/navigation"
	"git.home.luguber.info/inful/docnav/internal/plugin"
	navplugin "git.home.luguber.info/inful/docnav/internal/plugin/navigation"
)

// Output is the result of one run.
type Output struct {
	Markup string
	// Vars holds every template variable set by the plugins.
	Vars        map[string]any
	Tree        *nav.Tree
	Report      *nav.BuildReport
	Pages       []nav.Page
	Current     *nav.Page
	Fingerprint string
}

// Pipeline runs the navigation plugin over a content directory.
type Pipeline struct {
	cfg      *config.Config
	host     *plugin.Host
	nav      *navplugin.Plugin
	loader   *content.Loader
	logger   *slog.Logger
	recorder metrics.Recorder
	extra    []plugin.Plugin
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger handed to every component.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithPlugins registers additional plugins after the navigation plugin.
func WithPlugins(plugins ...plugin.Plugin) Option {
	return func(p *Pipeline) {
		p.extra = append(p.extra, plugins...)
	}
}

// New registers the plugins, starts the host and hands it cfg.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{cfg: cfg, logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(p)
	}

	p.nav = navplugin.New(navplugin.WithLogger(p.logger), navplugin.WithRecorder(p.recorder))
	registry := plugin.NewRegistry()
	for _, pl := range append([]plugin.Plugin{p.nav}, p.extra...) {
		if err := registry.Register(pl); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryPlugin, "failed to register plugin").Build()
		}
	}
	p.host = plugin.NewHost(registry, p.logger)

	if err := p.host.Start(); err != nil {
		return nil, err
	}
	if err := p.host.ConfigLoaded(cfg); err != nil {
		_ = p.host.Close()
		return nil, err
	}

	p.loader = content.NewLoader(cfg.Content.Directory, cfg.BasePath, p.host, content.WithLogger(p.logger))
	return p, nil
}

// Config returns the configuration the pipeline was created with.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// ContentDir returns the directory pages are loaded from.
func (p *Pipeline) ContentDir() string {
	return p.loader.Root()
}

// Run loads the pages, builds the navigation with current as the active page URL
// and collects the template variables.
func (p *Pipeline) Run(ctx context.Context, current string) (*Output, error) {
	result, err := p.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	cur := content.FindCurrent(result.Pages, current)
	if err := p.host.GetPages(result.Pages, cur); err != nil {
		return nil, err
	}

	vars := map[string]any{}
	if err := p.host.BeforeRender(vars); err != nil {
		return nil, err
	}

	var markup string
	if ns, ok := vars[navplugin.Name].(map[string]any); ok {
		markup, _ = ns[navplugin.MarkupVar].(string)
	}
	return &Output{
		Markup:      markup,
		Vars:        vars,
		Tree:        p.nav.Tree(),
		Report:      p.nav.Report(),
		Pages:       result.Pages,
		Current:     cur,
		Fingerprint: result.Fingerprint(),
	}, nil
}

// Close releases the plugins.
func (p *Pipeline) Close() error {
	return p.host.Close()
}

// WriteOutput writes markup to path through a temporary file and rename, so readers
// never see a partial menu.
func WriteOutput(path, markup string, logger *slog.Logger) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).
			Build()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output file").
			WithRetry(ferrors.RetryImmediate).
			WithContext("path", path).
			Build()
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	// #nosec G302 -- the menu is a public site partial.
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to set output file mode").
			WithContext("path", path).
			Build()
	}

	if _, err := tmp.WriteString(markup); err != nil {
		_ = tmp.Close()
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write output file").
			WithRetry(ferrors.RetryImmediate).
			WithContext("path", path).
			Build()
	}
	if err := tmp.Close(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write output file").
			WithRetry(ferrors.RetryImmediate).
			WithContext("path", path).
			Build()
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to replace output file").
			WithRetry(ferrors.RetryImmediate).
			WithContext("path", path).
			Build()
	}

	if logger != nil {
		logger.Info("Navigation written", logfields.Path(path), logfields.Count(len(markup)))
	}
	return nil
}
