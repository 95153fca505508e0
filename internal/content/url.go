package content

import (
	"path"
	"path/filepath"
	"strings"
)

const indexName = "index"

// PageURL maps a content file, relative to the content directory, to its page URL:
// "x/index.md" -> base+"/x/", "x/y.md" -> base+"/x/y" and "index.md" -> base+"/".
func PageURL(basePath, rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	switch {
	case rel == indexName:
		rel = ""
	case strings.HasSuffix(rel, "/"+indexName):
		rel = strings.TrimSuffix(rel, indexName)
	}
	return strings.TrimSuffix(basePath, "/") + "/" + rel
}

// pageID is the content-relative path without extension, as used for page data.
func pageID(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, path.Ext(rel))
}
