package xmltree

import (
	"io"

	"github.com/beevik/etree"
)

// String serializes n without an XML declaration.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	s, err := n.toDocument().WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func (n *Node) Encode(w io.Writer) error {
	_, err := n.toDocument().WriteTo(w)
	return err
}

// Indented serializes n with the given indentation. Indentation only adds
// whitespace, which Parse drops and Equal ignores.
func (n *Node) Indented(spaces int) string {
	doc := n.toDocument()
	doc.Indent(spaces)
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func (n *Node) toDocument() *etree.Document {
	doc := etree.NewDocument()
	if n.Kind == CommentKind {
		doc.CreateComment(n.Text)
		return doc
	}
	doc.SetRoot(toElement(n))
	return doc
}

func toElement(n *Node) *etree.Element {
	e := etree.NewElement(n.Tag)
	for _, a := range n.Attrs {
		e.CreateAttr(a.Name, a.Value)
	}
	if n.Text != "" {
		e.CreateText(n.Text)
	}
	for _, c := range n.Children {
		switch c.Kind {
		case ElementKind:
			e.AddChild(toElement(c))
		case CommentKind:
			e.CreateComment(c.Text)
		}
		if c.Tail != "" {
			e.CreateText(c.Tail)
		}
	}
	return e
}
