package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Validate checks a defaulted configuration for values the navigation build cannot use.
//
// Regex syntax is not checked here; patterns are compiled when the exclusion matcher is
// created and reported from there.
func Validate(cfg *Config) error {
	if cfg == nil {
		return ferrors.ConfigError("configuration is nil").Build()
	}
	if err := validateNavigation(&cfg.Navigation); err != nil {
		return err
	}
	return validateClasses(&cfg.Navigation)
}

func validateNavigation(nav *NavigationConfig) error {
	switch nav.IndexPlacement {
	case IndexAsChild, IndexAsFolder:
	default:
		return ferrors.ConfigError("invalid navigation.index_placement").
			WithContext("value", string(nav.IndexPlacement)).
			Build()
	}

	lists := []struct {
		field   string
		entries []string
	}{
		{"navigation.exclude.single", nav.Exclude.Single},
		{"navigation.exclude.folder", nav.Exclude.Folder},
		{"navigation.exclude.regex", nav.Exclude.Regex},
	}
	for _, l := range lists {
		for i, entry := range l.entries {
			if strings.ContainsAny(entry, "\n\r") {
				return ferrors.ConfigError("exclude entry contains a line break").
					WithContext("field", l.field).
					WithContext("index", i).
					Build()
			}
		}
	}
	for i, pattern := range nav.Exclude.Regex {
		if strings.TrimSpace(pattern) == "" {
			return ferrors.ConfigError("empty regex exclude entry").
				WithContext("field", "navigation.exclude.regex").
				WithContext("index", i).
				Build()
		}
	}
	return nil
}

// validateClasses rejects attribute values that would break out of the quoted attribute.
func validateClasses(nav *NavigationConfig) error {
	attrs := []struct {
		field string
		value string
	}{
		{"navigation.id", nav.ID},
		{"navigation.class", nav.Class},
		{"navigation.class_li", nav.ItemClass},
		{"navigation.class_a", nav.LinkClass},
		{"navigation.active_class", nav.ActiveClass},
	}
	for _, a := range attrs {
		if strings.ContainsAny(a.value, `"<>`) {
			return ferrors.ConfigError("attribute value contains a quote or angle bracket").
				WithContext("field", a.field).
				WithContext("value", a.value).
				Build()
		}
	}
	return nil
}
