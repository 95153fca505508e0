package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/config"
)

func TestBuildFragmentSinglePage(t *testing.T) {
	p := Page{URL: "/docs/guide", Title: "Guide", Order: "3"}
	root := BuildFragment(Segments(p, ""), p, nil, config.IndexAsChild)

	require.False(t, root.HasLeaf())
	require.Equal(t, []Key{{Name: "docs"}}, root.Keys())

	docs := root.Child(Key{Name: "docs"})
	require.NotNil(t, docs)
	assert.False(t, docs.HasLeaf())

	leaf, ok := docs.Child(Key{Name: "guide"}).Leaf()
	require.True(t, ok)
	assert.Equal(t, Leaf{Title: "Guide", URL: "/docs/guide", Order: "3"}, leaf)
}

func TestBuildFragmentFolderIndex(t *testing.T) {
	p := Page{URL: "/docs/", Title: "Docs"}

	t.Run("child placement", func(t *testing.T) {
		root := BuildFragment(Segments(p, ""), p, nil, config.IndexAsChild)
		docs := root.Child(Key{Name: "docs"})
		require.NotNil(t, docs)
		assert.False(t, docs.HasLeaf())

		leaf, ok := docs.Child(IndexKey).Leaf()
		require.True(t, ok)
		assert.Equal(t, "/docs/", leaf.URL)
	})

	t.Run("folder placement", func(t *testing.T) {
		root := BuildFragment(Segments(p, ""), p, nil, config.IndexAsFolder)
		docs := root.Child(Key{Name: "docs"})
		require.NotNil(t, docs)
		assert.Equal(t, 0, docs.Len())

		leaf, ok := docs.Leaf()
		require.True(t, ok)
		assert.Equal(t, "Docs", leaf.Title)
	})

	t.Run("root index stays under the index key", func(t *testing.T) {
		home := Page{URL: "/", Title: "Home"}
		root := BuildFragment(Segments(home, ""), home, nil, config.IndexAsFolder)
		assert.False(t, root.HasLeaf())
		assert.True(t, root.Child(IndexKey).HasLeaf())
	})
}

func TestBuildFragmentMarksCurrentPage(t *testing.T) {
	p := Page{URL: "/blog/post1", Title: "Post 1"}

	active := BuildFragment(Segments(p, ""), p, &Page{URL: "/blog/post1"}, config.IndexAsChild)
	leaf, _ := active.Child(Key{Name: "blog"}).Child(Key{Name: "post1"}).Leaf()
	assert.True(t, leaf.Active)

	inactive := BuildFragment(Segments(p, ""), p, &Page{URL: "/blog/post2"}, config.IndexAsChild)
	leaf, _ = inactive.Child(Key{Name: "blog"}).Child(Key{Name: "post1"}).Leaf()
	assert.False(t, leaf.Active)
}

func fragmentFor(url, title string) *Node {
	p := Page{URL: url, Title: title}
	return BuildFragment(Segments(p, ""), p, nil, config.IndexAsChild)
}

func TestMergeSharesFolders(t *testing.T) {
	root, err := MergeAll(
		fragmentFor("/docs/guide", "Guide"),
		fragmentFor("/docs/api", "API"),
		fragmentFor("/about", "About"),
	)
	require.NoError(t, err)

	assert.Equal(t, []Key{{Name: "docs"}, {Name: "about"}}, root.Keys())
	docs := root.Child(Key{Name: "docs"})
	assert.Equal(t, []Key{{Name: "guide"}, {Name: "api"}}, docs.Keys())
}

func TestMergeFolderLeafFromEitherSide(t *testing.T) {
	index := Page{URL: "/docs/", Title: "Docs"}
	guide := Page{URL: "/docs/guide", Title: "Guide"}

	for name, order := range map[string][]Page{
		"index first": {index, guide},
		"index last":  {guide, index},
	} {
		t.Run(name, func(t *testing.T) {
			var fragments []*Node
			for _, p := range order {
				fragments = append(fragments, BuildFragment(Segments(p, ""), p, nil, config.IndexAsFolder))
			}
			root, err := MergeAll(fragments...)
			require.NoError(t, err)

			docs := root.Child(Key{Name: "docs"})
			leaf, ok := docs.Leaf()
			require.True(t, ok)
			assert.Equal(t, "Docs", leaf.Title)
			assert.True(t, docs.Child(Key{Name: "guide"}).HasLeaf())
		})
	}
}

func TestMergeReportsCollision(t *testing.T) {
	_, err := MergeAll(
		fragmentFor("/docs/guide", "Guide"),
		fragmentFor("/docs/guide/", "Guide index"),
		fragmentFor("/docs/guide/index", "Guide index again"),
	)
	require.Error(t, err)

	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "/docs/guide/", collision.Existing)
	assert.Equal(t, "/docs/guide/index", collision.Incoming)
	assert.Equal(t, "docs/guide/<index>", collision.PathString())
}

func TestIndexKeyDoesNotCollideWithLiteralSegment(t *testing.T) {
	root, err := MergeAll(
		fragmentFor("/docs/", "Docs"),
		fragmentFor("/docs/_index", "Literal"),
	)
	require.NoError(t, err)

	docs := root.Child(Key{Name: "docs"})
	assert.Equal(t, 2, docs.Len())
	assert.True(t, docs.Child(IndexKey).HasLeaf())
	assert.True(t, docs.Child(Key{Name: "_index"}).HasLeaf())
}
