package plugin

import (
	"fmt"
	"sync"
)

// Registry holds the registered plugins. Hooks run in registration order.
type Registry struct {
	mu      sync.RWMutex
	seen    map[string]struct{} // keyed by name@version
	plugins []Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		seen: make(map[string]struct{}),
	}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name and version already exists.
func (r *Registry) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := plugin.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := metadata.String()
	if _, exists := r.seen[id]; exists {
		return fmt.Errorf("plugin %s already registered", id)
	}

	r.seen[id] = struct{}{}
	r.plugins = append(r.plugins, plugin)
	return nil
}

// List returns all registered plugins in registration order.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// ListByHook returns the plugins implementing hook, in registration order.
func (r *Registry) ListByHook(hook Hook) []Plugin {
	var result []Plugin
	for _, p := range r.List() {
		for _, h := range Hooks(p) {
			if h == hook {
				result = append(result, p)
				break
			}
		}
	}
	return result
}
