package plugin

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/navigation"
)

// Hook identifies a point in the page pipeline where plugins are called.
type Hook string

const (
	// HookConfigLoaded runs once the configuration has been parsed and defaulted.
	HookConfigLoaded Hook = "config_loaded"

	// HookBeforeReadFileMeta lets plugins request extra frontmatter headers.
	HookBeforeReadFileMeta Hook = "before_read_file_meta"

	// HookPageData runs for every page once its headers have been read.
	HookPageData Hook = "get_page_data"

	// HookGetPages runs once with every loaded page and the current page.
	HookGetPages Hook = "get_pages"

	// HookBeforeRender lets plugins add template variables.
	HookBeforeRender Hook = "before_render"
)

// String returns the string representation of the hook.
func (h Hook) String() string {
	return string(h)
}

// ConfigLoadedHook receives the loaded configuration.
type ConfigLoadedHook interface {
	Plugin
	ConfigLoaded(cfg *config.Config) error
}

// BeforeReadFileMetaHook adds entries to the header map. Keys are the page data
// names, values the frontmatter keys they are read from.
type BeforeReadFileMetaHook interface {
	Plugin
	BeforeReadFileMeta(headers map[string]string)
}

// PageDataHook fills the data of a single page from its header values.
type PageDataHook interface {
	Plugin
	PageData(data map[string]any, meta map[string]any)
}

// GetPagesHook receives every loaded page. current may be nil.
type GetPagesHook interface {
	Plugin
	GetPages(pages []navigation.Page, current *navigation.Page) error
}

// BeforeRenderHook adds template variables before output is produced.
type BeforeRenderHook interface {
	Plugin
	BeforeRender(vars map[string]any) error
}

// Hooks lists the hooks p implements, in pipeline order.
func Hooks(p Plugin) []Hook {
	var hooks []Hook
	if _, ok := p.(ConfigLoadedHook); ok {
		hooks = append(hooks, HookConfigLoaded)
	}
	if _, ok := p.(BeforeReadFileMetaHook); ok {
		hooks = append(hooks, HookBeforeReadFileMeta)
	}
	if _, ok := p.(PageDataHook); ok {
		hooks = append(hooks, HookPageData)
	}
	if _, ok := p.(GetPagesHook); ok {
		hooks = append(hooks, HookGetPages)
	}
	if _, ok := p.(BeforeRenderHook); ok {
		hooks = append(hooks, HookBeforeRender)
	}
	return hooks
}

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation describes what the plugin was doing when it failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
