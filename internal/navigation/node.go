package navigation

import "slices"

// Key identifies a child within a Node.
//
// The folder index entry uses IndexKey, which no URL segment can produce because
// segment keys always have Index set to false.
type Key struct {
	Name  string
	Index bool
}

// IndexKey is the reserved key of a folder's index page.
var IndexKey = Key{Index: true}

// SegmentKey returns the key for a path segment. The empty segment is the folder index.
func SegmentKey(segment string) Key {
	if segment == "" {
		return IndexKey
	}
	return Key{Name: segment}
}

func (k Key) String() string {
	if k.Index {
		return "<index>"
	}
	return k.Name
}

// sortName is the name used when a node without page data is compared.
func (k Key) sortName() string {
	if k.Index {
		return "index"
	}
	return k.Name
}

// Leaf is the page data attached to the node that terminates a page's path.
type Leaf struct {
	Title  string
	URL    string
	Order  string
	Active bool
}

// Node is one entry of the navigation tree.
type Node struct {
	leaf     *Leaf
	children map[Key]*Node
	// keys holds children in first-seen order; it only breaks comparator ties.
	keys []Key
}

func newNode() *Node {
	return &Node{}
}

func newLeafNode(l Leaf) *Node {
	return &Node{leaf: &l}
}

// Leaf returns a copy of the node's page data.
func (n *Node) Leaf() (Leaf, bool) {
	if n == nil || n.leaf == nil {
		return Leaf{}, false
	}
	return *n.leaf, true
}

// HasLeaf reports whether a page terminates at this node.
func (n *Node) HasLeaf() bool {
	return n != nil && n.leaf != nil
}

// Child returns the child stored under k, or nil.
func (n *Node) Child(k Key) *Node {
	if n == nil {
		return nil
	}
	return n.children[k]
}

// Keys returns the child keys in first-seen order.
func (n *Node) Keys() []Key {
	if n == nil {
		return nil
	}
	return slices.Clone(n.keys)
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

func (n *Node) addChild(k Key, child *Node) {
	if n.children == nil {
		n.children = make(map[Key]*Node)
	}
	n.children[k] = child
	n.keys = append(n.keys, k)
}

// SortedKeys returns the child keys in render order.
func (n *Node) SortedKeys() []Key {
	keys := n.Keys()
	slices.SortStableFunc(keys, func(a, b Key) int {
		return CompareNodes(a, n.children[a], b, n.children[b])
	})
	return keys
}
