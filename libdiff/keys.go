package libdiff

import (
	"strconv"

	"github.com/signadot/xmldiff/xmltree"
)

// KeyAttr is the attribute carrying the stable node key.
const KeyAttr = "__diff_key__"

// AssignNodeKeys stamps every element of root with its document order
// index, in place, and returns root.
func AssignNodeKeys(root *xmltree.Node) *xmltree.Node {
	for i, n := range root.Iter() {
		n.Set(KeyAttr, strconv.Itoa(i))
	}
	return root
}

// StripNodeKeys removes the key attribute from root and its descendants.
func StripNodeKeys(root *xmltree.Node) *xmltree.Node {
	for _, n := range root.Iter() {
		n.Del(KeyAttr)
	}
	return root
}

// KeyOf returns the node key of n, or "".
func KeyOf(n *xmltree.Node) string {
	if n == nil || n.Kind != xmltree.ElementKind {
		return ""
	}
	return n.Attr(KeyAttr)
}
