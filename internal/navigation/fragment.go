package navigation

import "git.home.luguber.info/inful/docnav/internal/config"

// BuildFragment builds the single-branch tree that places p at the position named
// by segments. The returned node is a root whose only descendant chain ends at
// p's leaf.
//
// With IndexAsFolder, a folder index page ("docs/") becomes the "docs" node's own
// leaf. With IndexAsChild it stays a separate child under IndexKey.
func BuildFragment(segments []string, p Page, current *Page, placement config.IndexPlacement) *Node {
	root := newNode()
	if len(segments) == 0 {
		segments = []string{""}
	}

	if len(segments) == 1 {
		root.addChild(SegmentKey(segments[0]), newLeafNode(Leaf{
			Title:  p.Title,
			URL:    p.URL,
			Order:  p.Order,
			Active: p.IsCurrent(current),
		}))
		return root
	}

	if placement == config.IndexAsFolder && segments[1] == "" {
		return BuildFragment(segments[:len(segments)-1], p, current, placement)
	}

	root.addChild(SegmentKey(segments[0]), BuildFragment(segments[1:], p, current, placement))
	return root
}
