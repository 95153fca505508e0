package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// NavigationDefaultApplier fills in menu identifiers, classes and exclusion lists.
type NavigationDefaultApplier struct{}

func (NavigationDefaultApplier) Domain() string { return "navigation" }

func (NavigationDefaultApplier) ApplyDefaults(cfg *Config) error {
	nav := &cfg.Navigation
	if nav.ID == "" {
		nav.ID = DefaultID
	}
	if nav.Class == "" {
		nav.Class = DefaultClass
	}
	if nav.ItemClass == "" {
		nav.ItemClass = DefaultItemClass
	}
	if nav.LinkClass == "" {
		nav.LinkClass = DefaultLinkClass
	}
	if nav.ActiveClass == "" {
		nav.ActiveClass = DefaultActiveClass
	}

	placement, err := NormalizeIndexPlacement(string(nav.IndexPlacement))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid navigation.index_placement").
			Fatal().
			UserAction().
			WithContext("value", string(nav.IndexPlacement)).
			Build()
	}
	nav.IndexPlacement = placement

	if nav.Exclude.Single == nil {
		nav.Exclude.Single = []string{}
	}
	if nav.Exclude.Folder == nil {
		nav.Exclude.Folder = []string{}
	}
	if nav.Exclude.Regex == nil {
		nav.Exclude.Regex = []string{}
	}
	return nil
}

// ContentDefaultApplier handles content discovery defaults.
type ContentDefaultApplier struct{}

func (ContentDefaultApplier) Domain() string { return "content" }

func (ContentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Content.Directory == "" {
		cfg.Content.Directory = "content"
	}
	cfg.BasePath = strings.TrimSpace(cfg.BasePath)
	return nil
}

// ObservabilityDefaultApplier handles logging and metrics defaults.
type ObservabilityDefaultApplier struct{}

func (ObservabilityDefaultApplier) Domain() string { return "observability" }

func (ObservabilityDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = ":9464"
	}
	return nil
}

// defaultAppliers returns the appliers in the order they run.
func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		ContentDefaultApplier{},
		NavigationDefaultApplier{},
		ObservabilityDefaultApplier{},
	}
}

// ApplyDefaults runs every domain applier over cfg.
func ApplyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers() {
		if err := applier.ApplyDefaults(cfg); err != nil {
			if classified, ok := ferrors.AsClassified(err); ok {
				return classified.WithContext("domain", applier.Domain())
			}
			return err
		}
	}
	return nil
}
