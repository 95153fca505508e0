package navigation

// Page is one content page as seen by the navigation build.
type Page struct {
	URL   string
	Title string
	// Order is the raw ordering token; empty means no explicit order.
	Order string
	// Meta carries the remaining page metadata through untouched.
	Meta map[string]any
	// Source names the file the page was read from, for error messages.
	Source string
}

// IsCurrent reports whether p is the page being viewed.
func (p Page) IsCurrent(current *Page) bool {
	return current != nil && p.URL == current.URL
}
