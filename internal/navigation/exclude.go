package navigation

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Rule names the exclusion rule that matched a page.
type Rule string

const (
	RuleSingle Rule = "single"
	RuleFolder Rule = "folder"
	RuleRegex  Rule = "regex"
)

type singleRule struct {
	entry string
	path  string
}

type folderRule struct {
	entry  string
	prefix string
	all    bool
}

type regexRule struct {
	entry string
	re    *regexp.Regexp
}

// Matcher decides whether a page is left out of the navigation.
type Matcher struct {
	basePath string
	singles  []singleRule
	folders  []folderRule
	patterns []regexRule
}

// NewMatcher prepares the exclusion rules. Regex entries are compiled here and an
// invalid one is reported as a configuration error naming the entry.
func NewMatcher(basePath string, ex config.ExcludeConfig) (*Matcher, error) {
	m := &Matcher{basePath: basePath}

	for _, entry := range ex.Single {
		m.singles = append(m.singles, singleRule{entry: entry, path: normalizeSingle(entry)})
	}
	for _, entry := range ex.Folder {
		m.folders = append(m.folders, normalizeFolder(entry))
	}
	for i, entry := range ex.Regex {
		re, err := compilePattern(entry)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid regex exclude pattern").
				Fatal().
				UserAction().
				WithContext("entry", entry).
				WithContext("index", i).
				Build()
		}
		m.patterns = append(m.patterns, regexRule{entry: entry, re: re})
	}
	return m, nil
}

// NormalizePath returns the path exclusion rules are matched against: relative to
// basePath, with a trailing "index" token removed and exactly one trailing "/".
func NormalizePath(url, basePath string) string {
	return withTrailingSlash(stripIndex(relativePath(url, basePath)))
}

// IsExcluded reports whether any rule matches p.
func (m *Matcher) IsExcluded(p Page) bool {
	_, _, ok := m.Match(p)
	return ok
}

// Match returns the first rule that excludes p and the configured entry behind it.
func (m *Matcher) Match(p Page) (Rule, string, bool) {
	path := NormalizePath(p.URL, m.basePath)

	for _, s := range m.singles {
		if path == s.path {
			return RuleSingle, s.entry, true
		}
	}
	for _, f := range m.folders {
		if f.all || strings.HasPrefix(path, f.prefix) {
			return RuleFolder, f.entry, true
		}
	}
	for _, r := range m.patterns {
		if r.re.MatchString(path) {
			return RuleRegex, r.entry, true
		}
	}
	return "", "", false
}

func normalizeSingle(entry string) string {
	return withTrailingSlash(stripIndex(strings.TrimPrefix(entry, "/")))
}

// normalizeFolder turns an entry into a prefix. An empty or root entry matches
// every page, which switches the whole menu off.
func normalizeFolder(entry string) folderRule {
	if entry == "" || entry == "/" {
		return folderRule{entry: entry, all: true}
	}
	return folderRule{entry: entry, prefix: withTrailingSlash(strings.TrimPrefix(entry, "/"))}
}

func stripIndex(p string) string {
	if p == indexToken {
		return ""
	}
	if strings.HasSuffix(p, "/"+indexToken) {
		return strings.TrimSuffix(p, indexToken)
	}
	return p
}

func withTrailingSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

// delimited matches PCRE-style patterns such as "/^drafts/i" or "#^tmp#".
var delimited = regexp.MustCompile(`^([/#~])(.*)([/#~])([imsU]*)$`)

// compilePattern compiles a Go regexp, accepting delimited PCRE-style entries.
func compilePattern(entry string) (*regexp.Regexp, error) {
	if m := delimited.FindStringSubmatch(entry); m != nil && m[1] == m[3] && len(m[2]) > 0 {
		pattern := m[2]
		if m[4] != "" {
			pattern = "(?" + m[4] + ")" + pattern
		}
		return regexp.Compile(pattern)
	}
	return regexp.Compile(entry)
}
