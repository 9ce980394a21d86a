package libdiff

import (
	"slices"
	"strings"

	"github.com/signadot/xmldiff/xmltree"
)

// Config holds the caller supplied functions of an analysis. All of them
// may be nil.
type Config struct {
	// IgnoreAttributes reports attributes left out of attribute
	// comparisons. KeyAttr is always ignored.
	IgnoreAttributes func(n *xmltree.Node, attr string) bool
	// OnNewNode is called once for each new element, in discovery order.
	OnNewNode func(n *xmltree.Node)
	// IsSubtree reports subtree boundaries.
	IsSubtree func(n *xmltree.Node) bool
	// MovingCandidateKey derives the candidate key of an empty keyless
	// node, "" if it cannot be a moving candidate.
	MovingCandidateKey func(n *xmltree.Node) string
}

type Option func(*Config)

func IgnoreAttributes(f func(n *xmltree.Node, attr string) bool) Option {
	return func(c *Config) { c.IgnoreAttributes = f }
}

// IgnoreAttributeNames ignores the named attributes on every element.
func IgnoreAttributeNames(names ...string) Option {
	return IgnoreAttributes(func(_ *xmltree.Node, attr string) bool {
		return slices.Contains(names, attr)
	})
}

func OnNewNode(f func(n *xmltree.Node)) Option {
	return func(c *Config) { c.OnNewNode = f }
}

func IsSubtree(f func(n *xmltree.Node) bool) Option {
	return func(c *Config) { c.IsSubtree = f }
}

func MovingCandidateKey(f func(n *xmltree.Node) string) Option {
	return func(c *Config) { c.MovingCandidateKey = f }
}

// SubtreeTags reports elements with one of the given tags as subtree
// boundaries.
func SubtreeTags(tags ...string) func(n *xmltree.Node) bool {
	return func(n *xmltree.Node) bool {
		return n.Kind == xmltree.ElementKind && slices.Contains(tags, n.Tag)
	}
}

// SignatureKey returns a candidate key function which combines the key of
// the enclosing subtree boundary with the tag and the sorted attributes of
// the node.
func SignatureKey(isSubtree func(n *xmltree.Node) bool) func(n *xmltree.Node) string {
	return func(n *xmltree.Node) string {
		var b strings.Builder
		if isSubtree != nil {
			for p := n.Parent; p != nil; p = p.Parent {
				if isSubtree(p) {
					b.WriteString(KeyOf(p))
					break
				}
			}
		}
		b.WriteString("|")
		b.WriteString(n.Tag)
		attrs := slices.Clone(n.Attrs)
		slices.SortFunc(attrs, func(a, b xmltree.Attr) int { return strings.Compare(a.Name, b.Name) })
		for _, a := range attrs {
			if a.Name == KeyAttr {
				continue
			}
			b.WriteString("|")
			b.WriteString(a.Name)
			b.WriteString("=")
			b.WriteString(a.Value)
		}
		return b.String()
	}
}

func (c *Config) ignored(n *xmltree.Node, attr string) bool {
	if attr == KeyAttr {
		return true
	}
	return c.IgnoreAttributes != nil && c.IgnoreAttributes(n, attr)
}

func (c *Config) newNode(n *xmltree.Node) {
	if c.OnNewNode != nil {
		c.OnNewNode(n)
	}
}
