package navigation

import (
	"strings"

	"git.home.luguber.info/inful/docnav/internal/config"
)

// Renderer produces nested list markup from a Tree.
type Renderer struct {
	id          string
	class       string
	itemClass   string
	linkClass   string
	activeClass string
}

// NewRenderer creates a renderer using the identifiers and classes of cfg.
func NewRenderer(cfg config.NavigationConfig) *Renderer {
	return &Renderer{
		id:          cfg.ID,
		class:       cfg.Class,
		itemClass:   cfg.ItemClass,
		linkClass:   cfg.LinkClass,
		activeClass: cfg.ActiveClass,
	}
}

// Render returns the markup of t. An empty tree renders as "".
func (r *Renderer) Render(t *Tree) string {
	var b strings.Builder
	r.renderNode(&b, t.Root(), true)
	return b.String()
}

func (r *Renderer) renderNode(b *strings.Builder, n *Node, root bool) {
	if n == nil {
		return
	}

	var children strings.Builder
	if n.Len() > 0 {
		if root {
			children.WriteString(`<ul id="` + r.id + `" class="` + r.class + `">`)
		} else {
			children.WriteString("<ul>")
		}
		for _, k := range n.SortedKeys() {
			r.renderNode(&children, n.children[k], false)
		}
		children.WriteString("</ul>")
	}

	if n.leaf == nil {
		b.WriteString(children.String())
		return
	}

	l := n.leaf
	b.WriteString(`<li class="` + r.classes(l.Active, r.itemClass) + `">`)
	b.WriteString(`<a href="` + l.URL + `" class="` + r.classes(l.Active, r.linkClass) + `" title="` + l.Title + `">`)
	b.WriteString(l.Title)
	b.WriteString("</a>")
	b.WriteString(children.String())
	b.WriteString("</li>")
}

func (r *Renderer) classes(active bool, base string) string {
	if active && r.activeClass != "" {
		if base == "" {
			return r.activeClass
		}
		return r.activeClass + " " + base
	}
	return base
}
