package navigation

import (
	"fmt"
	"strings"
)

// CollisionError reports two pages resolving to the same tree position.
type CollisionError struct {
	Path     []Key
	Existing string
	Incoming string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("pages %q and %q resolve to the same navigation entry %q", e.Existing, e.Incoming, e.PathString())
}

// PathString renders the colliding path with "/" separators.
func (e *CollisionError) PathString() string {
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = k.String()
	}
	return strings.Join(parts, "/")
}

// Merge deep-merges src into dst. Children present on one side only are moved
// over as they are; children on both sides are merged recursively. A leaf on
// both sides is a *CollisionError and leaves dst partially merged.
//
// src is consumed: its subtrees may end up shared with dst.
func Merge(dst, src *Node) error {
	return mergeAt(dst, src, nil)
}

func mergeAt(dst, src *Node, path []Key) error {
	if src.leaf != nil {
		if dst.leaf != nil {
			return &CollisionError{
				Path:     append([]Key(nil), path...),
				Existing: dst.leaf.URL,
				Incoming: src.leaf.URL,
			}
		}
		dst.leaf = src.leaf
	}

	for _, k := range src.keys {
		child := src.children[k]
		existing, ok := dst.children[k]
		if !ok {
			dst.addChild(k, child)
			continue
		}
		if err := mergeAt(existing, child, append(path[:len(path):len(path)], k)); err != nil {
			return err
		}
	}
	return nil
}

// MergeAll folds fragments into a new aggregate root, in order.
func MergeAll(fragments ...*Node) (*Node, error) {
	root := newNode()
	for _, f := range fragments {
		if err := Merge(root, f); err != nil {
			return nil, err
		}
	}
	return root, nil
}
