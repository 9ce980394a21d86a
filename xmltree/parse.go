package xmltree

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// Parse parses an XML document. Whitespace-only character data is dropped,
// processing instructions and directives are ignored.
func Parse(s string) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromDocument(doc)
}

func ParseBytes(d []byte) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromDocument(doc)
}

func ParseReader(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromDocument(doc)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Node {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

func fromDocument(doc *etree.Document) (*Node, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, ErrNoRoot)
	}
	return fromElement(root), nil
}

func fromElement(e *etree.Element) *Node {
	n := &Node{Kind: ElementKind, Tag: e.FullTag()}
	if len(e.Attr) != 0 {
		n.Attrs = make([]Attr, 0, len(e.Attr))
		for _, a := range e.Attr {
			n.Attrs = append(n.Attrs, Attr{Name: a.FullKey(), Value: a.Value})
		}
	}
	var last *Node
	addText := func(s string) {
		if last == nil {
			n.Text += s
			return
		}
		last.Tail += s
	}
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.Element:
			c := fromElement(t)
			c.Parent = n
			n.Children = append(n.Children, c)
			last = c
		case *etree.Comment:
			c := NewComment(t.Data)
			c.Parent = n
			n.Children = append(n.Children, c)
			last = c
		case *etree.CharData:
			if strings.TrimSpace(t.Data) == "" {
				continue
			}
			addText(t.Data)
		}
	}
	return n
}
