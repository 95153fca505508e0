package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.False(t, doc.Had)
	require.Empty(t, doc.Frontmatter)
	require.Equal(t, input, doc.Body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("key: value\n"), doc.Frontmatter)
	require.Equal(t, []byte("# Title\n"), doc.Body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	doc, err := Split(input)
	require.Error(t, err)
	require.False(t, doc.Had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, "\r\n", doc.Newline)
	require.Equal(t, []byte("key: value\r\n"), doc.Frontmatter)
	require.Equal(t, []byte("# Title\r\n"), doc.Body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Empty(t, doc.Frontmatter)
	require.Equal(t, []byte("# Title\n"), doc.Body)
}

func TestSplit_FrontmatterOnly_WithoutTrailingNewline(t *testing.T) {
	input := []byte("---\nTitle: Only\n---")

	doc, err := Split(input)
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("Title: Only\n"), doc.Frontmatter)
	require.Empty(t, doc.Body)
}

func TestParseYAML(t *testing.T) {
	fields, err := ParseYAML([]byte("Title: Hello\nOrder: 2\n"))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"Title": "Hello", "Order": 2}, fields)

	fields, err = ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, fields)

	_, err = ParseYAML([]byte("Title: [unclosed\n"))
	require.Error(t, err)
}

func TestHeaders_CaseInsensitive(t *testing.T) {
	fields := map[string]any{"title": "Guide", "ORDER": 3, "Extra": "ignored"}

	meta := Headers(fields, map[string]string{
		"title":       "Title",
		"order":       "Order",
		"description": "Description",
	})

	require.Equal(t, map[string]any{
		"title":       "Guide",
		"order":       3,
		"description": "",
	}, meta)
}

func TestString(t *testing.T) {
	require.Equal(t, "", String(nil))
	require.Equal(t, "abc", String("abc"))
	require.Equal(t, "2", String(2))
	require.Equal(t, "1.5", String(1.5))
	require.Equal(t, "true", String(true))
}
