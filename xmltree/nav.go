package xmltree

import (
	"fmt"
	"strings"

	"github.com/antchfx/xpath"
)

// Navigator implements xpath.NodeNavigator over a tree. The tree's root
// element sits below a virtual document node, so absolute expressions such
// as "/form/field" work as they do on a parsed document.
type Navigator struct {
	top  *Node
	cur  *Node
	doc  bool
	attr int
}

// NewNavigator returns a navigator positioned on n.
func NewNavigator(n *Node) *Navigator {
	return &Navigator{top: n.Root(), cur: n, attr: -1}
}

// Current returns the node the navigator is on, nil on the document node.
func (nav *Navigator) Current() *Node {
	if nav.doc {
		return nil
	}
	return nav.cur
}

func (nav *Navigator) NodeType() xpath.NodeType {
	switch {
	case nav.doc:
		return xpath.RootNode
	case nav.attr != -1:
		return xpath.AttributeNode
	case nav.cur.Kind == CommentKind:
		return xpath.CommentNode
	}
	return xpath.ElementNode
}

func (nav *Navigator) LocalName() string {
	if nav.doc {
		return ""
	}
	name := nav.cur.Tag
	if nav.attr != -1 {
		name = nav.cur.Attrs[nav.attr].Name
	}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (nav *Navigator) Prefix() string {
	if nav.doc {
		return ""
	}
	name := nav.cur.Tag
	if nav.attr != -1 {
		name = nav.cur.Attrs[nav.attr].Name
	}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return ""
}

func (nav *Navigator) Value() string {
	switch {
	case nav.doc:
		return nav.top.TextContent()
	case nav.attr != -1:
		return nav.cur.Attrs[nav.attr].Value
	}
	return nav.cur.TextContent()
}

func (nav *Navigator) Copy() xpath.NodeNavigator {
	c := *nav
	return &c
}

func (nav *Navigator) MoveToRoot() {
	nav.cur = nav.top
	nav.doc = true
	nav.attr = -1
}

func (nav *Navigator) MoveToParent() bool {
	switch {
	case nav.doc:
		return false
	case nav.attr != -1:
		nav.attr = -1
		return true
	case nav.cur == nav.top:
		nav.doc = true
		return true
	case nav.cur.Parent == nil:
		return false
	}
	nav.cur = nav.cur.Parent
	return true
}

func (nav *Navigator) MoveToNextAttribute() bool {
	if nav.doc || nav.cur.Kind != ElementKind {
		return false
	}
	if nav.attr >= len(nav.cur.Attrs)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *Navigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	if nav.doc {
		nav.doc = false
		nav.cur = nav.top
		return true
	}
	if len(nav.cur.Children) == 0 {
		return false
	}
	nav.cur = nav.cur.Children[0]
	return true
}

func (nav *Navigator) MoveToFirst() bool {
	if nav.doc || nav.attr != -1 || nav.cur.Parent == nil || nav.cur == nav.top {
		return false
	}
	first := nav.cur.Parent.Children[0]
	if first == nav.cur {
		return false
	}
	nav.cur = first
	return true
}

func (nav *Navigator) MoveToNext() bool {
	if nav.doc || nav.attr != -1 || nav.cur == nav.top {
		return false
	}
	next := nav.cur.Next()
	if next == nil {
		return false
	}
	nav.cur = next
	return true
}

func (nav *Navigator) MoveToPrevious() bool {
	if nav.doc || nav.attr != -1 || nav.cur == nav.top {
		return false
	}
	prev := nav.cur.Previous()
	if prev == nil {
		return false
	}
	nav.cur = prev
	return true
}

func (nav *Navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*Navigator)
	if !ok || o.top != nav.top {
		return false
	}
	*nav = *o
	return true
}

// Select evaluates expr with ctx as the context node and returns the
// selected elements and comments in document order.
func Select(ctx *Node, expr string) ([]*Node, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrXPath, expr, err)
	}
	return SelectCompiled(ctx, x), nil
}

func SelectCompiled(ctx *Node, x *xpath.Expr) []*Node {
	var res []*Node
	iter := x.Select(NewNavigator(ctx))
	for iter.MoveNext() {
		nav, ok := iter.Current().(*Navigator)
		if !ok || nav.doc || nav.attr != -1 {
			continue
		}
		res = append(res, nav.cur)
	}
	return res
}

// SelectOne returns the first node selected by expr, or nil.
func SelectOne(ctx *Node, expr string) (*Node, error) {
	res, err := Select(ctx, expr)
	if err != nil || len(res) == 0 {
		return nil, err
	}
	return res[0], nil
}
