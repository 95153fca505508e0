// Package frontmatter splits YAML frontmatter from Markdown pages and reads
// header values from it.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a page split into its raw frontmatter and body.
type Document struct {
	// Frontmatter is the YAML between the delimiters, without them.
	Frontmatter []byte
	Body        []byte
	// Had reports whether the page started with a frontmatter block.
	Had bool
	// Newline is the line ending detected in the page.
	Newline string
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter, Had is false and Body is the
// full input.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	doc := Document{Body: content, Newline: nl}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return doc, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return Document{Frontmatter: []byte{}, Body: content[start+len(open):], Had: true, Newline: nl}, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) && len(content) > start+len(nl)+3 {
			return Document{
				Frontmatter: content[start : len(content)-3],
				Body:        []byte{},
				Had:         true,
				Newline:     nl,
			}, nil
		}
		return Document{Newline: nl}, ErrMissingClosingDelimiter
	}

	return Document{
		Frontmatter: content[start : start+idx+len(nl)],
		Body:        content[start+idx+len(closeSeq):],
		Had:         true,
		Newline:     nl,
	}, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Headers reads the requested headers from fields. headers maps the name a value
// is stored under to the frontmatter key it is read from; keys match case-insensitively.
// Missing headers are stored as "".
func Headers(fields map[string]any, headers map[string]string) map[string]any {
	folded := make(map[string]any, len(fields))
	for k, v := range fields {
		key := strings.ToLower(strings.TrimSpace(k))
		if _, ok := folded[key]; !ok {
			folded[key] = v
		}
	}

	meta := make(map[string]any, len(headers))
	for name, key := range headers {
		v, ok := folded[strings.ToLower(key)]
		if !ok || v == nil {
			meta[name] = ""
			continue
		}
		meta[name] = v
	}
	return meta
}

// String formats a header value the way it is shown in navigation: scalars
// in their YAML spelling, nil as "".
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
