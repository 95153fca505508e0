// Package plugin hosts plugins that hook into the page pipeline of docnav.
// Each hook is an optional interface; a plugin implements only the hooks it needs
// and the Host dispatches them in registration order.
package plugin

import (
	"fmt"
)

// Plugin represents a docnav plugin with metadata.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, description).
	Metadata() PluginMetadata
}

// PluginLifecycle extends Plugin with optional lifecycle hooks.
type PluginLifecycle interface {
	Plugin

	// Init is called once when the host starts.
	Init() error

	// Cleanup is called when the host is closed.
	Cleanup() error
}

// PluginMetadata describes a plugin's identity.
type PluginMetadata struct {
	// Name is the unique plugin identifier (e.g., "at_navigation").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Description provides a human-readable summary of the plugin's purpose.
	Description string

	// Author is the plugin creator or maintainer.
	Author string
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s", m.Name, m.Version)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	return nil
}

// BasePlugin provides default implementations for plugin lifecycle methods.
// Plugins can embed this to avoid implementing optional methods.
type BasePlugin struct{}

// Init is a no-op default implementation.
func (b *BasePlugin) Init() error {
	return nil
}

// Cleanup is a no-op default implementation.
func (b *BasePlugin) Cleanup() error {
	return nil
}
