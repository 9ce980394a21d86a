package xmltree

import (
	"slices"
	"strings"
)

type Kind int

const (
	ElementKind Kind = iota
	CommentKind
)

func (k Kind) String() string {
	switch k {
	case ElementKind:
		return "element"
	case CommentKind:
		return "comment"
	}
	return "unknown"
}

type Attr struct {
	Name  string
	Value string
}

// Node is an element or a comment. Text holds the character data before the
// first child (for a comment, its content) and Tail the character data that
// follows the node inside its parent.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
	Tail     string
	Parent   *Node
}

func NewElement(tag string, attrs ...Attr) *Node {
	return &Node{Kind: ElementKind, Tag: tag, Attrs: attrs}
}

func NewComment(text string) *Node {
	return &Node{Kind: CommentKind, Text: text}
}

func (n *Node) IsElement() bool { return n != nil && n.Kind == ElementKind }
func (n *Node) IsComment() bool { return n != nil && n.Kind == CommentKind }

func (n *Node) Get(name string) (string, bool) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			return n.Attrs[i].Value, true
		}
	}
	return "", false
}

// Attr returns the value of the attribute name, or "" when absent.
func (n *Node) Attr(name string) string {
	v, _ := n.Get(name)
	return v
}

// Set sets an attribute, keeping its position when it already exists.
func (n *Node) Set(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

func (n *Node) Del(name string) bool {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = slices.Delete(n.Attrs, i, i+1)
			return true
		}
	}
	return false
}

// AttrMap returns the attributes as a map.
func (n *Node) AttrMap() map[string]string {
	res := make(map[string]string, len(n.Attrs))
	for _, a := range n.Attrs {
		res[a.Name] = a.Value
	}
	return res
}

// Clone returns a deep copy of n which has no parent.
func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Kind = n.Kind
	dst.Tag = n.Tag
	dst.Text = n.Text
	dst.Tail = n.Tail
	dst.Parent = nil
	dst.Attrs = slices.Clone(n.Attrs)
	dst.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		cc := c.Clone()
		cc.Parent = dst
		dst.Children[i] = cc
	}
	return dst
}

// ShallowClone copies tag, attributes and kind, without text, tail or children.
func (n *Node) ShallowClone() *Node {
	return &Node{Kind: n.Kind, Tag: n.Tag, Attrs: slices.Clone(n.Attrs)}
}

// Index returns the position of n among its parent's children, or -1.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	return slices.Index(n.Parent.Children, n)
}

func (n *Node) Previous() *Node {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.Parent.Children[i-1]
}

func (n *Node) Next() *Node {
	i := n.Index()
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}

func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Insert inserts c at position i of n's children, detaching it first.
func (n *Node) Insert(i int, c *Node) {
	if c.Parent != nil {
		c.Parent.Remove(c)
	}
	c.Parent = n
	n.Children = slices.Insert(n.Children, i, c)
}

func (n *Node) Append(cs ...*Node) {
	for _, c := range cs {
		n.Insert(len(n.Children), c)
	}
}

// Remove detaches c from n. The tail of c goes with it.
func (n *Node) Remove(c *Node) bool {
	i := slices.Index(n.Children, c)
	if i < 0 {
		return false
	}
	n.Children = slices.Delete(n.Children, i, i+1)
	c.Parent = nil
	return true
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	res := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == ElementKind {
			res = append(res, c)
		}
	}
	return res
}

// Iter returns n and all its element descendants in document order.
func (n *Node) Iter() []*Node {
	var res []*Node
	var walk func(*Node)
	walk = func(x *Node) {
		if x.Kind != ElementKind {
			return
		}
		res = append(res, x)
		for _, c := range x.Children {
			walk(c)
		}
	}
	walk(n)
	return res
}

// IsAncestorOf reports whether n is a strict ancestor of c.
func (n *Node) IsAncestorOf(c *Node) bool {
	for p := c.Parent; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// HasContent reports whether n has children or non blank text.
func (n *Node) HasContent() bool {
	return len(n.Children) != 0 || strings.TrimSpace(n.Text) != ""
}

// TextContent returns the concatenated character data of n and its
// descendants.
func (n *Node) TextContent() string {
	if n.Kind == CommentKind {
		return n.Text
	}
	var b strings.Builder
	var walk func(*Node)
	walk = func(x *Node) {
		b.WriteString(x.Text)
		for _, c := range x.Children {
			if c.Kind == ElementKind {
				walk(c)
			}
			b.WriteString(c.Tail)
		}
	}
	walk(n)
	return b.String()
}
