// Package content discovers Markdown pages on disk and turns them into
// navigation pages, running the plugin host's header and page data hooks.
package content
