package navigation

import (
	"fmt"
	"io"
	"strings"
)

// Entry is a serializable view of a tree node, children in render order.
type Entry struct {
	Key      string  `json:"key" yaml:"key"`
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	URL      string  `json:"url,omitempty" yaml:"url,omitempty"`
	Order    string  `json:"order,omitempty" yaml:"order,omitempty"`
	Active   bool    `json:"active,omitempty" yaml:"active,omitempty"`
	Children []Entry `json:"children,omitempty" yaml:"children,omitempty"`
}

// Entries returns the top-level entries of t.
func (t *Tree) Entries() []Entry {
	return entries(t.Root())
}

func entries(n *Node) []Entry {
	if n.Len() == 0 {
		return nil
	}
	out := make([]Entry, 0, n.Len())
	for _, k := range n.SortedKeys() {
		child := n.children[k]
		e := Entry{Key: k.String(), Children: entries(child)}
		if l, ok := child.Leaf(); ok {
			e.Title, e.URL, e.Order, e.Active = l.Title, l.URL, l.Order, l.Active
		}
		out = append(out, e)
	}
	return out
}

// WriteText writes an indented outline of t, one node per line.
func (t *Tree) WriteText(w io.Writer) error {
	return t.Walk(func(path []Key, n *Node) error {
		indent := strings.Repeat("  ", len(path)-1)
		key := path[len(path)-1]

		l, ok := n.Leaf()
		if !ok {
			_, err := fmt.Fprintf(w, "%s%s/\n", indent, key)
			return err
		}

		line := fmt.Sprintf("%s%s %q -> %s", indent, key, l.Title, l.URL)
		if l.Order != "" {
			line += " order=" + l.Order
		}
		if l.Active {
			line += " (active)"
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
}
