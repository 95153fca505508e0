// Package navigation provides the at_navigation plugin, which builds the nested
// navigation menu from the loaded pages and exposes its markup as a template variable.
package navigation

import (
	"log/slog"
	"maps"
	"sync"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	nav "git.home.luguber.info/inful/docnav/internal/navigation"
	"git.home.luguber.info/inful/docnav/internal/plugin"
)

const (
	// Name is the plugin name and the template variable namespace.
	Name = "at_navigation"
	// Version of the plugin.
	Version = "v1.0.0"
	// MarkupVar is the key of the rendered menu inside the plugin's variables.
	MarkupVar = "navigation"
)

// Plugin builds the navigation tree at GetPages and renders it at BeforeRender.
type Plugin struct {
	plugin.BasePlugin

	logger   *slog.Logger
	recorder metrics.Recorder

	mu       sync.RWMutex
	builder  *nav.Builder
	renderer *nav.Renderer
	tree     *nav.Tree
	report   *nav.BuildReport
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger passed to the navigation builder.
func WithLogger(l *slog.Logger) Option {
	return func(p *Plugin) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Plugin) {
		if r != nil {
			p.recorder = r
		}
	}
}

// New creates the plugin. It does nothing useful until ConfigLoaded has run.
func New(opts ...Option) *Plugin {
	p := &Plugin{logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Metadata implements plugin.Plugin.
func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     Version,
		Description: "Nested navigation menu with ordering and exclusions",
	}
}

// ConfigLoaded defaults the navigation options of cfg and prepares the builder.
// cfg itself is not modified.
func (p *Plugin) ConfigLoaded(cfg *config.Config) error {
	local := *cfg
	if err := (config.NavigationDefaultApplier{}).ApplyDefaults(&local); err != nil {
		return err
	}

	builder, err := nav.NewBuilder(local.Navigation, local.BasePath,
		nav.WithLogger(p.logger), nav.WithRecorder(p.recorder))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.builder = builder
	p.renderer = nav.NewRenderer(local.Navigation)
	p.tree = nil
	p.report = nil
	return nil
}

// BeforeReadFileMeta requests the Order frontmatter key.
func (p *Plugin) BeforeReadFileMeta(headers map[string]string) {
	headers["order"] = "Order"
}

// PageData copies every header value into the page data.
func (p *Plugin) PageData(data map[string]any, meta map[string]any) {
	maps.Copy(data, meta)
}

// GetPages builds the navigation tree. On failure the previous tree is kept.
func (p *Plugin) GetPages(pages []nav.Page, current *nav.Page) error {
	p.mu.RLock()
	builder := p.builder
	p.mu.RUnlock()
	if builder == nil {
		return ferrors.PluginError("navigation configuration not loaded").
			WithContext("plugin", Name).
			Build()
	}

	tree, report, err := builder.Build(pages, current)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.tree = tree
	p.report = report
	return nil
}

// BeforeRender sets vars["at_navigation"]["navigation"] to the menu markup,
// keeping other entries of the namespace.
func (p *Plugin) BeforeRender(vars map[string]any) error {
	markup := p.Markup()
	p.recorder.ObserveRenderBytes(len(markup))

	ns, ok := vars[Name].(map[string]any)
	if !ok {
		ns = make(map[string]any, 1)
		vars[Name] = ns
	}
	ns[MarkupVar] = markup
	return nil
}

// Markup renders the last built tree, or "" when nothing was built.
func (p *Plugin) Markup() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.renderer == nil || p.tree == nil {
		return ""
	}
	return p.renderer.Render(p.tree)
}

// Tree returns the last built tree, or nil.
func (p *Plugin) Tree() *nav.Tree {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tree
}

// Report returns the report of the last successful build, or nil.
func (p *Plugin) Report() *nav.BuildReport {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.report
}
