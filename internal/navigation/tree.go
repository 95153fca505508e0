package navigation

// Tree is the aggregate navigation structure of one build. It is read-only
// after Build returns and may be rendered concurrently.
type Tree struct {
	root  *Node
	pages int
}

// Root returns the root node. The root never carries page data.
func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Pages returns the number of pages in the tree.
func (t *Tree) Pages() int {
	if t == nil {
		return 0
	}
	return t.pages
}

// Find follows segments from the root. The empty segment selects the folder index.
func (t *Tree) Find(segments ...string) *Node {
	n := t.Root()
	for _, s := range segments {
		n = n.Child(SegmentKey(s))
		if n == nil {
			return nil
		}
	}
	return n
}

// WalkFunc is called for every node below the root with the keys leading to it.
type WalkFunc func(path []Key, n *Node) error

// Walk visits the tree depth first in render order.
func (t *Tree) Walk(fn WalkFunc) error {
	return walk(t.Root(), nil, fn)
}

func walk(n *Node, path []Key, fn WalkFunc) error {
	for _, k := range n.SortedKeys() {
		childPath := append(path[:len(path):len(path)], k)
		child := n.children[k]
		if err := fn(childPath, child); err != nil {
			return err
		}
		if err := walk(child, childPath, fn); err != nil {
			return err
		}
	}
	return nil
}
