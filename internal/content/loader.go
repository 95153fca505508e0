package content

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/inful/mdfp"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/navigation"
)

// Hooks is the part of the plugin host the loader calls for every page.
type Hooks interface {
	Headers() map[string]string
	PageData(data map[string]any, meta map[string]any)
}

// Result is the outcome of loading a content directory.
type Result struct {
	Pages []navigation.Page
	// Fingerprints maps each page source to the mdfp fingerprint of its content.
	Fingerprints map[string]string
}

// Fingerprint combines the page fingerprints into one value that changes whenever
// a page is added, removed or edited.
func (r *Result) Fingerprint() string {
	sources := make([]string, 0, len(r.Fingerprints))
	for s := range r.Fingerprints {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	var b strings.Builder
	for _, s := range sources {
		b.WriteString(s)
		b.WriteByte('=')
		b.WriteString(r.Fingerprints[s])
		b.WriteByte('\n')
	}
	return mdfp.CalculateFingerprintFromParts("", b.String())
}

// Loader reads Markdown pages from a content directory.
type Loader struct {
	root     string
	basePath string
	hooks    Hooks
	logger   *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for discovery diagnostics.
func WithLogger(l *slog.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a loader for the pages below root. URLs are prefixed with basePath.
func NewLoader(root, basePath string, hooks Hooks, opts ...LoaderOption) *Loader {
	l := &Loader{root: root, basePath: basePath, hooks: hooks, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns the content directory.
func (l *Loader) Root() string {
	return l.root
}

// Load walks the content directory in lexical order and reads every page.
// Hidden entries and entries starting with "_" are skipped.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	start := time.Now()

	info, err := os.Stat(l.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("content directory").
				WithContext("path", l.root).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat content directory").
			WithContext("path", l.root).
			Build()
	}
	if !info.IsDir() {
		return nil, ferrors.FileSystemError("content path is not a directory").
			WithContext("path", l.root).
			Build()
	}

	headers := l.hooks.Headers()
	result := &Result{Fingerprints: make(map[string]string)}

	err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != l.root && Skipped(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsPage(path) {
			return nil
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}

		page, fp, err := l.loadPage(path, rel, headers)
		if err != nil {
			return err
		}
		result.Pages = append(result.Pages, page)
		result.Fingerprints[page.Source] = fp

		l.logger.Debug("Discovered page", logfields.File(page.Source), logfields.PageURL(page.URL))
		return nil
	})
	if err != nil {
		if ferrors.IsClassified(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to walk content directory").
			WithContext("path", l.root).
			Build()
	}

	l.logger.Info("Content loaded",
		logfields.Path(l.root),
		logfields.Count(len(result.Pages)),
		logfields.Duration(time.Since(start)))
	return result, nil
}

func (l *Loader) loadPage(path, rel string, headers map[string]string) (navigation.Page, string, error) {
	source := filepath.ToSlash(rel)

	// #nosec G304 -- path comes from walking the configured content directory.
	raw, err := os.ReadFile(path)
	if err != nil {
		return navigation.Page{}, "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read page").
			WithContext("file", source).
			Build()
	}

	doc, err := frontmatter.Split(raw)
	if err != nil {
		return navigation.Page{}, "", ferrors.WrapError(err, ferrors.CategoryContent, "invalid frontmatter").
			WithContext("file", source).
			Build()
	}
	fields, err := frontmatter.ParseYAML(doc.Frontmatter)
	if err != nil {
		return navigation.Page{}, "", ferrors.WrapError(err, ferrors.CategoryContent, "invalid frontmatter yaml").
			WithContext("file", source).
			Build()
	}

	meta := frontmatter.Headers(fields, headers)
	title := frontmatter.String(meta["title"])
	if title == "" {
		title = firstHeading(doc.Body)
	}
	if title == "" {
		title = fileTitle(strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel)))
		if dir := filepath.Dir(rel); strings.EqualFold(title, indexName) && dir != "." {
			title = fileTitle(filepath.Base(dir))
		}
	}

	data := map[string]any{
		"id":    pageID(rel),
		"url":   PageURL(l.basePath, rel),
		"title": title,
	}
	l.hooks.PageData(data, meta)
	// A page data hook may copy an empty header over the derived title.
	if frontmatter.String(data["title"]) == "" {
		data["title"] = title
	}

	page := navigation.Page{
		URL:    frontmatter.String(data["url"]),
		Title:  frontmatter.String(data["title"]),
		Order:  frontmatter.String(data["order"]),
		Meta:   meta,
		Source: source,
	}
	fp := mdfp.CalculateFingerprintFromParts(string(doc.Frontmatter), string(doc.Body))
	return page, fp, nil
}

// IsPage reports whether path names a Markdown page.
func IsPage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// Skipped reports whether a file or directory name is left out of discovery.
func Skipped(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// FindCurrent returns the page whose URL is url, or a bare page with that URL when
// none matches. An empty url yields nil.
func FindCurrent(pages []navigation.Page, url string) *navigation.Page {
	if url == "" {
		return nil
	}
	for i := range pages {
		if pages[i].URL == url {
			return &pages[i]
		}
	}
	return &navigation.Page{URL: url}
}
