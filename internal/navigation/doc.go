// Package navigation turns a flat list of content pages into a folder-shaped
// navigation tree and renders it as nested list markup.
//
// A build runs in four steps: the Matcher drops excluded pages, Segments splits
// each remaining URL into path segments, BuildFragment produces a single-branch
// tree per page and Merge folds the fragments into one aggregate Tree. The
// Renderer walks that tree, ordering siblings with CompareNodes.
//
// Titles and URLs are emitted verbatim. Callers that feed untrusted metadata
// must escape it before building the Page values.
package navigation
