package config

import "git.home.luguber.info/inful/docnav/internal/foundation/normalization"

// NavigationConfig holds the rendering and exclusion options of the navigation menu.
type NavigationConfig struct {
	ID          string `yaml:"id"`
	Class       string `yaml:"class"`
	ItemClass   string `yaml:"class_li"`
	LinkClass   string `yaml:"class_a"`
	ActiveClass string `yaml:"active_class"`

	IndexPlacement IndexPlacement `yaml:"index_placement"`
	Exclude        ExcludeConfig  `yaml:"exclude"`
}

// ExcludeConfig lists pages omitted from the menu.
type ExcludeConfig struct {
	// Single holds exact page paths; a trailing "index" token matches the folder index page.
	Single []string `yaml:"single"`
	// Folder holds folder prefixes. An empty or "/" entry excludes every page.
	Folder []string `yaml:"folder"`
	// Regex holds patterns matched against the normalized page path.
	Regex []string `yaml:"regex"`
}

// IndexPlacement controls where a folder's index page lands in the tree.
type IndexPlacement string

const (
	// IndexAsChild keeps the index page as its own entry among the folder's children.
	IndexAsChild IndexPlacement = "child"
	// IndexAsFolder makes the index page the folder entry itself, with subpages nested below it.
	IndexAsFolder IndexPlacement = "folder"
)

var indexPlacementNormalizer = normalization.NewNormalizer(map[string]IndexPlacement{
	"child":  IndexAsChild,
	"folder": IndexAsFolder,
}, IndexAsChild)

// NormalizeIndexPlacement returns the canonical placement or an error for unknown values.
func NormalizeIndexPlacement(raw string) (IndexPlacement, error) {
	return indexPlacementNormalizer.NormalizeWithError(raw)
}

// Navigation defaults.
const (
	DefaultID          = "at-navigation"
	DefaultClass       = "at-navigation"
	DefaultItemClass   = "li-item"
	DefaultLinkClass   = "a-item"
	DefaultActiveClass = "is-active"
)
