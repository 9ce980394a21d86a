package xpatch

import (
	"slices"

	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
)

// body is the content of a spec built twice: out is written to the patch
// document and work is applied to the working tree. In work, move
// placeholders map to the working element they stand for.
type body struct {
	out, work *xmltree.Node
	moves     map[*xmltree.Node]move
}

type move struct {
	node *xmltree.Node
	out  *xmltree.Node
}

func newBody() *body {
	return &body{
		out:   xmltree.NewElement("xpath"),
		work:  xmltree.NewElement("xpath"),
		moves: map[*xmltree.Node]move{},
	}
}

func (b *body) empty() bool {
	return len(b.out.Children) == 0 && isBlank(b.out.Text)
}

// outContent returns the text and detached children of the out side.
func (b *body) outContent() (string, []*xmltree.Node) {
	cs := slices.Clone(b.out.Children)
	for _, c := range cs {
		b.out.Remove(c)
	}
	return b.out.Text, cs
}

func appendText(parent *xmltree.Node, text string) {
	if k := len(parent.Children); k > 0 {
		parent.Children[k-1].Tail += text
		return
	}
	parent.Text += text
}

func (b *body) text(s string) {
	appendText(b.out, s)
	appendText(b.work, s)
}

// addMove appends placeholders for the working element n to out and work.
func (b *body) addMove(out, work, n *xmltree.Node) {
	o := xmltree.NewElement("xpath",
		xmltree.Attr{Name: "expr"},
		xmltree.Attr{Name: "position", Value: "move"})
	w := o.Clone()
	out.Append(o)
	work.Append(w)
	b.moves[w] = move{node: n, out: o}
}

func (b *body) addComment(out, work, c *xmltree.Node) {
	o := xmltree.NewComment(c.Text)
	out.Append(o)
	work.Append(xmltree.NewComment(c.Text))
}

// addNew appends copies of n, an element of the new tree, to out and work.
// Its keyed descendants are moves of their working elements, and the key
// attribute is not written out.
func (b *body) addNew(out, work, n *xmltree.Node, byKey map[string]*xmltree.Node) {
	o := n.ShallowClone()
	o.Del(libdiff.KeyAttr)
	w := o.ShallowClone()
	o.Text = n.Text
	w.Text = n.Text
	out.Append(o)
	work.Append(w)
	b.addChildren(o, w, n, byKey)
}

func (b *body) addChildren(out, work, n *xmltree.Node, byKey map[string]*xmltree.Node) {
	for _, c := range n.Children {
		switch {
		case c.Kind == xmltree.CommentKind:
			b.addComment(out, work, c)
		case byKey[libdiff.KeyOf(c)] != nil:
			b.addMove(out, work, byKey[libdiff.KeyOf(c)])
		default:
			b.addNew(out, work, c, byKey)
		}
		appendText(out, c.Tail)
		appendText(work, c.Tail)
	}
}
