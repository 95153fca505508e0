package navigation

import "strings"

// indexToken is the file-name form of a folder index page.
const indexToken = "index"

// relativePath removes basePath and one separator from the front of url.
// URLs outside basePath are only stripped of their leading separator.
func relativePath(url, basePath string) string {
	base := strings.TrimSuffix(basePath, "/")
	switch {
	case base == "":
	case url == base:
		url = ""
	case strings.HasPrefix(url, base+"/"):
		url = url[len(base):]
	}
	return strings.TrimPrefix(url, "/")
}

// Segments splits a page URL, relative to basePath, into path segments.
//
// A trailing empty segment marks a folder index page and is kept; a final
// "index" segment is rewritten to that marker so "docs/index" and "docs/"
// land on the same position. Empty interior segments ("a//b") are dropped.
func Segments(p Page, basePath string) []string {
	parts := strings.Split(relativePath(p.URL, basePath), "/")
	last := len(parts) - 1
	if parts[last] == indexToken {
		parts[last] = ""
	}

	segments := make([]string, 0, len(parts))
	for i, part := range parts {
		if part == "" && i != last {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
