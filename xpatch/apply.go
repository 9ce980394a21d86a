package xpatch

import (
	"fmt"
	"strings"

	"github.com/signadot/xmldiff/debug"
	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
)

// Apply applies a patch document to doc and returns the patched tree. doc
// and patch are not modified.
//
// The patch is a <data> element holding <xpath expr position> specs, or
// nested <data> bundles, processed in document order. Any other element
// carrying a position attribute is a spec locating the first element with
// the same tag and attributes. Inside a spec body, <xpath position="move">
// elements are replaced by the element they locate. All of them are located
// before any is extracted, so a moved element may contain another one.
//
// Removing or extracting an element leaves its tail text in place.
func Apply(doc, patch *xmltree.Node) (*xmltree.Node, error) {
	a := &applier{root: doc.Clone()}
	if err := a.apply(patch.Clone()); err != nil {
		return nil, err
	}
	return a.root, nil
}

// ApplyString parses doc and patch and applies patch to doc.
func ApplyString(doc, patch string) (*xmltree.Node, error) {
	d, err := xmltree.Parse(doc)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(patch) == "" {
		return d, nil
	}
	p, err := xmltree.Parse(patch)
	if err != nil {
		return nil, err
	}
	return Apply(d, p)
}

type applier struct {
	root *xmltree.Node
}

func (a *applier) apply(spec *xmltree.Node) error {
	if spec.Kind != xmltree.ElementKind {
		return nil
	}
	if spec.Tag == "data" {
		for _, c := range spec.Elements() {
			if err := a.apply(c); err != nil {
				return err
			}
		}
		return nil
	}
	target, err := a.locate(spec)
	if err != nil {
		return err
	}
	pos, ok := libdiff.ParsePosition(spec.Attr("position"))
	if !ok || pos == libdiff.Move {
		return fmt.Errorf("%w: position %q", ErrBadSpec, spec.Attr("position"))
	}
	if debug.Apply() {
		debug.Logf("apply: %s %s on %s\n", pos, spec.Attr("expr"), target.Tag)
	}
	newRoot, err := applySpec(target, pos, spec, a.locate)
	if err != nil {
		return err
	}
	if newRoot != nil {
		a.root = newRoot
	}
	return nil
}

func (a *applier) locate(spec *xmltree.Node) (*xmltree.Node, error) {
	var expr string
	if spec.Tag == "xpath" {
		expr = spec.Attr("expr")
	} else {
		expr = specExpr(spec)
	}
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression in %s", ErrNodeNotFound, spec.ShallowClone())
	}
	n, err := xmltree.SelectOne(a.root, expr)
	if err != nil {
		return nil, err
	}
	if n == nil || n.Kind != xmltree.ElementKind {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, expr)
	}
	return n, nil
}

// specExpr builds the expression locating the element described by a
// shorthand spec such as <field name="x" position="after">.
func specExpr(spec *xmltree.Node) string {
	var b strings.Builder
	b.WriteString("//")
	b.WriteString(spec.Tag)
	for _, at := range spec.Attrs {
		if at.Name == "position" {
			continue
		}
		q, ok := quote(at.Value)
		if !ok {
			return ""
		}
		fmt.Fprintf(&b, "[@%s=%s]", at.Name, q)
	}
	return b.String()
}

// applySpec applies spec at target. resolve locates the element of each
// move placeholder; it is called in document order for all of them before
// any element is extracted. When target is the root and is replaced, the
// new root is returned.
func applySpec(target *xmltree.Node, pos libdiff.Position, spec *xmltree.Node, resolve func(*xmltree.Node) (*xmltree.Node, error)) (*xmltree.Node, error) {
	if pos == libdiff.Attributes {
		return nil, setAttributes(target, spec)
	}
	phs := placeholders(spec)
	moved := make([]*xmltree.Node, len(phs))
	seen := map[*xmltree.Node]bool{}
	for i, ph := range phs {
		n, err := resolve(ph)
		if err != nil {
			return nil, err
		}
		if n == target || n.IsAncestorOf(target) {
			return nil, fmt.Errorf("%w: cannot move %s into itself", ErrBadSpec, n.Tag)
		}
		if seen[n] {
			return nil, fmt.Errorf("%w: %s moved twice", ErrBadSpec, n.Tag)
		}
		seen[n] = true
		moved[i] = n
	}
	for i, ph := range phs {
		n := moved[i]
		if n.Parent != nil {
			removeElement(n)
		}
		substitute(ph, n)
	}
	text := spec.Text
	nodes := append([]*xmltree.Node(nil), spec.Children...)
	for _, c := range nodes {
		spec.Remove(c)
	}
	switch pos {
	case libdiff.Inside:
		insertInside(target, text, nodes)
	case libdiff.Before:
		if target.Parent == nil {
			return nil, fmt.Errorf("%w: before the root element", ErrBadSpec)
		}
		insertBefore(target, text, nodes)
	case libdiff.After:
		if target.Parent == nil {
			return nil, fmt.Errorf("%w: after the root element", ErrBadSpec)
		}
		insertAfter(target, text, nodes)
	case libdiff.Replace:
		if target.Parent == nil {
			for _, c := range nodes {
				if c.Kind == xmltree.ElementKind {
					c.Tail = ""
					return c, nil
				}
			}
			return nil, fmt.Errorf("%w: root replaced by nothing", ErrBadSpec)
		}
		insertBefore(target, text, nodes)
		removeElement(target)
	}
	return nil, nil
}

func isPlaceholder(n *xmltree.Node) bool {
	return n.Kind == xmltree.ElementKind && n.Tag == "xpath" && n.Attr("position") == "move"
}

func placeholders(spec *xmltree.Node) []*xmltree.Node {
	var res []*xmltree.Node
	var walk func(*xmltree.Node)
	walk = func(n *xmltree.Node) {
		for _, c := range n.Children {
			if isPlaceholder(c) {
				res = append(res, c)
				continue
			}
			walk(c)
		}
	}
	walk(spec)
	return res
}

// substitute puts n at the place of the placeholder ph, with its tail.
func substitute(ph, n *xmltree.Node) {
	p := ph.Parent
	i := ph.Index()
	p.Children[i] = n
	n.Parent = p
	n.Tail = ph.Tail
	ph.Parent = nil
}

func addTextBefore(n *xmltree.Node, text string) {
	if text == "" {
		return
	}
	if prev := n.Previous(); prev != nil {
		prev.Tail += text
		return
	}
	n.Parent.Text += text
}

// removeElement detaches n, leaving its tail in place.
func removeElement(n *xmltree.Node) {
	addTextBefore(n, n.Tail)
	n.Tail = ""
	n.Parent.Remove(n)
}

func insertBefore(n *xmltree.Node, text string, nodes []*xmltree.Node) {
	addTextBefore(n, text)
	p := n.Parent
	for _, c := range nodes {
		p.Insert(n.Index(), c)
	}
}

func insertAfter(n *xmltree.Node, text string, nodes []*xmltree.Node) {
	tail := n.Tail
	n.Tail = text
	p := n.Parent
	i := n.Index()
	for j, c := range nodes {
		p.Insert(i+1+j, c)
	}
	if len(nodes) == 0 {
		n.Tail += tail
		return
	}
	nodes[len(nodes)-1].Tail += tail
}

func insertInside(n *xmltree.Node, text string, nodes []*xmltree.Node) {
	if k := len(n.Children); k > 0 {
		n.Children[k-1].Tail += text
	} else {
		n.Text += text
	}
	n.Append(nodes...)
}

// setAttributes applies <attribute name="x">value</attribute> children; an
// empty value removes the attribute.
func setAttributes(n *xmltree.Node, spec *xmltree.Node) error {
	for _, c := range spec.Elements() {
		if c.Tag != "attribute" {
			return fmt.Errorf("%w: unexpected <%s> in attributes spec", ErrBadSpec, c.Tag)
		}
		name := c.Attr("name")
		if name == "" {
			return fmt.Errorf("%w: attribute without name", ErrBadSpec)
		}
		if c.Text == "" {
			n.Del(name)
			continue
		}
		n.Set(name, c.Text)
	}
	return nil
}
