package navigation

import (
	"math"
	"path"
	"strconv"
	"strings"
)

// CompareOrder orders two sibling leaves.
//
// Without order tokens on either side the URL base names are compared byte-wise.
// Otherwise equal tokens tie and a missing token sorts after a present one.
// Numeric tokens sort before text tokens; numbers compare by value, text byte-wise.
func CompareOrder(a, b Leaf) int {
	ao, bo := strings.TrimSpace(a.Order), strings.TrimSpace(b.Order)
	switch {
	case ao == "" && bo == "":
		return strings.Compare(path.Base(a.URL), path.Base(b.URL))
	case ao == "":
		return 1
	case bo == "":
		return -1
	default:
		return compareTokens(ao, bo)
	}
}

func compareTokens(a, b string) int {
	af, anum := numericToken(a)
	bf, bnum := numericToken(b)
	switch {
	case anum && bnum:
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case anum:
		return -1
	case bnum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// numericToken parses a finite number; NaN and infinities count as text.
func numericToken(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CompareNodes orders two children of the same node. A folder node without page
// data compares as a leaf with no order whose base name is its key.
func CompareNodes(ka Key, a *Node, kb Key, b *Node) int {
	return CompareOrder(sortLeaf(ka, a), sortLeaf(kb, b))
}

func sortLeaf(k Key, n *Node) Leaf {
	if l, ok := n.Leaf(); ok {
		return l
	}
	return Leaf{URL: k.sortName()}
}
