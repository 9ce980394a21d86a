// Package xmltest provides rapid generators of element trees and of
// edited copies of them.
package xmltest

import (
	"pgregory.net/rapid"

	"github.com/signadot/xmldiff/xmltree"
)

var (
	tags      = []string{"form", "group", "field", "page", "div"}
	attrNames = []string{"name", "string", "invisible"}
	values    = []string{"a", "b", "c", "x y"}
	texts     = []string{"", "", "", "hello", "world", "a b"}
)

// Tree draws trees at most depth levels deep below the root.
func Tree(depth int) *rapid.Generator[*xmltree.Node] {
	return rapid.Custom(func(t *rapid.T) *xmltree.Node {
		return tree(t, depth)
	})
}

func tree(t *rapid.T, depth int) *xmltree.Node {
	n := xmltree.NewElement(rapid.SampledFrom(tags).Draw(t, "tag"))
	for _, a := range rapid.SliceOfNDistinct(rapid.SampledFrom(attrNames), 0, 2, rapid.ID[string]).Draw(t, "attrs") {
		n.Set(a, rapid.SampledFrom(values).Draw(t, "value"))
	}
	n.Text = rapid.SampledFrom(texts).Draw(t, "text")
	if depth <= 0 {
		return n
	}
	k := rapid.IntRange(0, 3).Draw(t, "children")
	for range k {
		var c *xmltree.Node
		if rapid.IntRange(0, 7).Draw(t, "comment") == 0 {
			c = xmltree.NewComment(rapid.SampledFrom(values).Draw(t, "note"))
		} else {
			c = tree(t, depth-1)
		}
		c.Tail = rapid.SampledFrom(texts).Draw(t, "tail")
		n.Append(c)
	}
	return n
}

// Edited draws copies of old with up to maxEdits random edits: attribute
// changes, removals, insertions of new elements, moves, text changes and
// comment insertions. The root is never removed nor moved.
func Edited(old *xmltree.Node, maxEdits int) *rapid.Generator[*xmltree.Node] {
	return rapid.Custom(func(t *rapid.T) *xmltree.Node {
		n := old.Clone()
		k := rapid.IntRange(0, maxEdits).Draw(t, "edits")
		for range k {
			edit(t, n)
		}
		return n
	})
}

func edit(t *rapid.T, root *xmltree.Node) {
	e := rapid.SampledFrom(root.Iter()).Draw(t, "elem")
	switch rapid.IntRange(0, 7).Draw(t, "op") {
	case 0:
		e.Set(rapid.SampledFrom(attrNames).Draw(t, "attr"), rapid.SampledFrom(values).Draw(t, "value"))
	case 1:
		e.Del(rapid.SampledFrom(attrNames).Draw(t, "attr"))
	case 2:
		if e.Parent != nil {
			detach(e, rapid.Bool().Draw(t, "keepTail"))
		}
	case 3:
		c := tree(t, 1)
		c.Tail = rapid.SampledFrom(texts).Draw(t, "tail")
		e.Insert(rapid.IntRange(0, len(e.Children)).Draw(t, "at"), c)
	case 4:
		if e.Parent == nil {
			return
		}
		var dests []*xmltree.Node
		for _, d := range root.Iter() {
			if d != e && !e.IsAncestorOf(d) {
				dests = append(dests, d)
			}
		}
		d := rapid.SampledFrom(dests).Draw(t, "dest")
		detach(e, rapid.Bool().Draw(t, "keepTail"))
		d.Insert(rapid.IntRange(0, len(d.Children)).Draw(t, "at"), e)
	case 5:
		e.Text = rapid.SampledFrom(texts).Draw(t, "text")
	case 6:
		if e.Parent != nil {
			e.Tail = rapid.SampledFrom(texts).Draw(t, "tail")
		}
	case 7:
		c := xmltree.NewComment(rapid.SampledFrom(values).Draw(t, "note"))
		e.Insert(rapid.IntRange(0, len(e.Children)).Draw(t, "at"), c)
	}
}

// detach removes e from its parent. With keepTail, its tail stays where it
// was.
func detach(e *xmltree.Node, keepTail bool) {
	p := e.Parent
	if keepTail && e.Tail != "" {
		if prev := e.Previous(); prev != nil {
			prev.Tail += e.Tail
		} else {
			p.Text += e.Tail
		}
	}
	e.Tail = ""
	p.Remove(e)
}
