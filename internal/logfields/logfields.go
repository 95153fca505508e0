package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPageURL    = "page_url"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyRule       = "rule"
	KeyEntry      = "entry"
	KeyCount      = "count"
	KeyIncluded   = "included"
	KeyExcluded   = "excluded"
	KeyPlugin     = "plugin"
	KeyHook       = "hook"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
	KeyAttempt    = "attempt"
)

func BuildID(id string) slog.Attr  { return slog.String(KeyBuildID, id) }
func PageURL(u string) slog.Attr   { return slog.String(KeyPageURL, u) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func File(f string) slog.Attr      { return slog.String(KeyFile, f) }
func Rule(r string) slog.Attr      { return slog.String(KeyRule, r) }
func Entry(e string) slog.Attr     { return slog.String(KeyEntry, e) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func Included(n int) slog.Attr     { return slog.Int(KeyIncluded, n) }
func Excluded(n int) slog.Attr     { return slog.Int(KeyExcluded, n) }
func Plugin(name string) slog.Attr { return slog.String(KeyPlugin, name) }
func Hook(name string) slog.Attr   { return slog.String(KeyHook, name) }
func Attempt(n int) slog.Attr      { return slog.Int(KeyAttempt, n) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
