package plugin

import (
	"errors"
	"log/slog"
	"maps"
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/navigation"
)

// DefaultHeaders maps page data names to the frontmatter keys every page is read with.
var DefaultHeaders = map[string]string{
	"title":       "Title",
	"description": "Description",
	"author":      "Author",
	"date":        "Date",
	"robots":      "Robots",
	"template":    "Template",
}

// Host dispatches pipeline hooks to the plugins of a registry.
type Host struct {
	registry *Registry
	logger   *slog.Logger
}

// NewHost creates a host over registry. A nil logger uses slog.Default().
func NewHost(registry *Registry, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{registry: registry, logger: logger}
}

// Start calls Init on every plugin implementing PluginLifecycle.
func (h *Host) Start() error {
	for _, p := range h.registry.List() {
		lc, ok := p.(PluginLifecycle)
		if !ok {
			continue
		}
		if err := lc.Init(); err != nil {
			return h.fail(p, "init", err)
		}
	}
	return nil
}

// Close calls Cleanup on every plugin implementing PluginLifecycle and joins the errors.
func (h *Host) Close() error {
	var errs []error
	for _, p := range h.registry.List() {
		if lc, ok := p.(PluginLifecycle); ok {
			if err := lc.Cleanup(); err != nil {
				errs = append(errs, h.fail(p, "cleanup", err))
			}
		}
	}
	return errors.Join(errs...)
}

// ConfigLoaded hands cfg to every plugin; the first failure stops dispatch.
func (h *Host) ConfigLoaded(cfg *config.Config) error {
	for _, p := range h.registry.ListByHook(HookConfigLoaded) {
		if err := p.(ConfigLoadedHook).ConfigLoaded(cfg); err != nil {
			return h.fail(p, HookConfigLoaded.String(), err)
		}
	}
	return nil
}

// Headers returns DefaultHeaders extended by every BeforeReadFileMeta hook.
func (h *Host) Headers() map[string]string {
	headers := maps.Clone(DefaultHeaders)
	for _, p := range h.registry.ListByHook(HookBeforeReadFileMeta) {
		p.(BeforeReadFileMetaHook).BeforeReadFileMeta(headers)
	}
	return headers
}

// PageData lets every plugin fill data from the header values in meta.
func (h *Host) PageData(data map[string]any, meta map[string]any) {
	for _, p := range h.registry.ListByHook(HookPageData) {
		p.(PageDataHook).PageData(data, meta)
	}
}

// GetPages hands the loaded pages to every plugin.
func (h *Host) GetPages(pages []navigation.Page, current *navigation.Page) error {
	for _, p := range h.registry.ListByHook(HookGetPages) {
		start := time.Now()
		if err := p.(GetPagesHook).GetPages(pages, current); err != nil {
			return h.fail(p, HookGetPages.String(), err)
		}
		h.logger.Debug("Plugin hook finished",
			logfields.Plugin(p.Metadata().Name),
			logfields.Hook(HookGetPages.String()),
			logfields.Count(len(pages)),
			logfields.Duration(time.Since(start)))
	}
	return nil
}

// BeforeRender lets every plugin add template variables to vars.
func (h *Host) BeforeRender(vars map[string]any) error {
	for _, p := range h.registry.ListByHook(HookBeforeRender) {
		if err := p.(BeforeRenderHook).BeforeRender(vars); err != nil {
			return h.fail(p, HookBeforeRender.String(), err)
		}
	}
	return nil
}

// fail wraps err in a *PluginError. A classified cause keeps its category so the
// exit code reflects what went wrong rather than where.
func (h *Host) fail(p Plugin, operation string, err error) error {
	name := p.Metadata().Name
	h.logger.Debug("Plugin hook failed",
		logfields.Plugin(name), logfields.Hook(operation), logfields.Error(err))

	category := ferrors.CategoryPlugin
	if ferrors.IsClassified(err) {
		category = ferrors.GetCategory(err)
	}
	return ferrors.WrapError(NewPluginError(name, operation, err), category, "plugin hook failed").
		WithContext("plugin", name).
		WithContext("hook", operation).
		Build()
}
