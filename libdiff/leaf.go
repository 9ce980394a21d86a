package libdiff

import (
	"strings"

	"github.com/signadot/xmldiff/xmltree"
)

// Position is where a patch operation applies relative to its target.
type Position int

const (
	Inside Position = iota
	Before
	After
	Replace
	Attributes
	Move
)

func (p Position) String() string {
	switch p {
	case Inside:
		return "inside"
	case Before:
		return "before"
	case After:
		return "after"
	case Replace:
		return "replace"
	case Attributes:
		return "attributes"
	case Move:
		return "move"
	}
	return "unknown"
}

// ParsePosition parses a position name; an empty name is Inside.
func ParsePosition(s string) (Position, bool) {
	switch s {
	case "", "inside":
		return Inside, true
	case "before":
		return Before, true
	case "after":
		return After, true
	case "replace":
		return Replace, true
	case "attributes":
		return Attributes, true
	case "move":
		return Move, true
	}
	return Inside, false
}

// Leaf is one item of the linearized children of an element: a TextLeaf,
// a NodeLeaf or a CommentLeaf.
type Leaf interface {
	leaf()
}

// TextLeaf is the character data between two children. Ignores records
// the positions at which the text is already accounted for and must not be
// emitted again.
type TextLeaf struct {
	Text    string
	Ignores map[Position]bool
}

// NodeLeaf is a child element. ID is its key when it has one and Owned
// reports whether it was a child of the same element in the old tree.
type NodeLeaf struct {
	Node  *xmltree.Node
	ID    string
	Owned bool
}

type CommentLeaf struct {
	Node *xmltree.Node
}

func (*TextLeaf) leaf()    {}
func (*NodeLeaf) leaf()    {}
func (*CommentLeaf) leaf() {}

func (t *TextLeaf) Ignore(p Position) {
	if t.Ignores == nil {
		t.Ignores = map[Position]bool{}
	}
	t.Ignores[p] = true
}

func (t *TextLeaf) Ignored(p Position) bool {
	return t.Ignores[p]
}

// appendText coalesces s into a trailing TextLeaf of leaves.
func appendText(leaves []Leaf, s string) []Leaf {
	if s == "" {
		return leaves
	}
	if n := len(leaves); n > 0 {
		if t, ok := leaves[n-1].(*TextLeaf); ok {
			t.Text += s
			return leaves
		}
	}
	return append(leaves, &TextLeaf{Text: s})
}

// OldLeaves linearizes the children of an element of the old tree.
// Comments are left out, the text around them is joined.
func OldLeaves(n *xmltree.Node) []Leaf {
	leaves := appendText(nil, n.Text)
	for _, c := range n.Children {
		if c.Kind == xmltree.ElementKind {
			leaves = append(leaves, &NodeLeaf{Node: c, ID: KeyOf(c), Owned: true})
		}
		leaves = appendText(leaves, c.Tail)
	}
	return leaves
}

// Run is a unit of the canonical form of a leaf sequence: a child identity
// followed by the trimmed text up to the next child. The first run has an
// empty ID and holds the leading text.
type Run struct {
	ID   string
	Text string
}

const (
	runNew     = "new"
	runComment = "comment:"
)

// Canonical reduces leaves to runs. Keyless nodes are "new".
func Canonical(leaves []Leaf) []Run {
	runs := []Run{{}}
	var text strings.Builder
	flush := func() {
		runs[len(runs)-1].Text = strings.TrimSpace(text.String())
		text.Reset()
	}
	for _, l := range leaves {
		switch x := l.(type) {
		case *TextLeaf:
			text.WriteString(x.Text)
		case *NodeLeaf:
			flush()
			id := x.ID
			if id == "" {
				id = runNew
			}
			runs = append(runs, Run{ID: id})
		case *CommentLeaf:
			flush()
			runs = append(runs, Run{ID: runComment + x.Node.Text})
		}
	}
	flush()
	return runs
}

// LeafText returns the joined text of the text leaves in leaves.
func LeafText(leaves []Leaf) string {
	var b strings.Builder
	for _, l := range leaves {
		if t, ok := l.(*TextLeaf); ok {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}
