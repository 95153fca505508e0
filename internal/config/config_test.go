package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func TestDefault_AllOptionsDefaulted(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "at-navigation", cfg.Navigation.ID)
	assert.Equal(t, "at-navigation", cfg.Navigation.Class)
	assert.Equal(t, "li-item", cfg.Navigation.ItemClass)
	assert.Equal(t, "a-item", cfg.Navigation.LinkClass)
	assert.Equal(t, "is-active", cfg.Navigation.ActiveClass)
	assert.Equal(t, IndexAsChild, cfg.Navigation.IndexPlacement)
	assert.NotNil(t, cfg.Navigation.Exclude.Single)
	assert.NotNil(t, cfg.Navigation.Exclude.Folder)
	assert.NotNil(t, cfg.Navigation.Exclude.Regex)
	assert.Empty(t, cfg.Navigation.Exclude.Single)
	assert.Empty(t, cfg.Navigation.Exclude.Folder)
	assert.Empty(t, cfg.Navigation.Exclude.Regex)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, "content", cfg.Content.Directory)
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_FullDocument(t *testing.T) {
	cfg, err := Parse([]byte(`
base_path: /site
content:
  directory: ./pages
  current: /site/blog/post1
navigation:
  id: menu
  class: main-menu
  class_li: item
  class_a: link
  active_class: current
  index_placement: FOLDER
  exclude:
    single: [about/index]
    folder: [drafts]
    regex: ['^private/']
logging:
  level: DEBUG
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, "/site", cfg.BasePath)
	assert.Equal(t, "./pages", cfg.Content.Directory)
	assert.Equal(t, "/site/blog/post1", cfg.Content.Current)
	assert.Equal(t, "menu", cfg.Navigation.ID)
	assert.Equal(t, "current", cfg.Navigation.ActiveClass)
	assert.Equal(t, IndexAsFolder, cfg.Navigation.IndexPlacement)
	assert.Equal(t, []string{"about/index"}, cfg.Navigation.Exclude.Single)
	assert.Equal(t, []string{"drafts"}, cfg.Navigation.Exclude.Folder)
	assert.Equal(t, []string{"^private/"}, cfg.Navigation.Exclude.Regex)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestParse_MalformedConfigurationFailsFast(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"scalar single exclude", "navigation:\n  exclude:\n    single: about\n"},
		{"map folder exclude", "navigation:\n  exclude:\n    folder: {a: b}\n"},
		{"exclude as list", "navigation:\n  exclude: [a, b]\n"},
		{"unknown key", "navigation:\n  excludes: {}\n"},
		{"unknown index placement", "navigation:\n  index_placement: sideways\n"},
		{"empty regex entry", "navigation:\n  exclude:\n    regex: ['']\n"},
		{"quote in class", "navigation:\n  class: 'a\"b'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig), "got %v", err)
		})
	}
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCNAV_TEST_BASE", "/docs")

	cfg, err := Parse([]byte("base_path: ${DOCNAV_TEST_BASE}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/docs", cfg.BasePath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_DecodeErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte("navigation:\n  exclude:\n    regex: foo\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	got, _ := classified.Context().GetString("path")
	assert.Equal(t, path, got)
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docnav.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"drafts"}, cfg.Navigation.Exclude.Folder)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	require.NoError(t, Init(path, true))
}

func TestLogLevelSlogMapping(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.SlogLevel().String())
	assert.Equal(t, "WARN", NormalizeLogLevel(" Warn ").SlogLevel().String())
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat("xml"))
}
