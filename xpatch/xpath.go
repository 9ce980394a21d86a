package xpatch

import (
	"strconv"
	"strings"

	"github.com/signadot/xmldiff/debug"
	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
)

// xpather builds expressions locating elements of a tree which keeps
// changing under it.
type xpather struct {
	isSubtree func(*xmltree.Node) bool
	ident     []string
}

// of returns an expression selecting n first in its tree, or "" when n is
// detached from root.
func (x *xpather) of(root, n *xmltree.Node) string {
	if n == nil || n.Root() != root {
		if debug.XPath() {
			debug.Logf("xpath: %s not in tree\n", n)
		}
		return ""
	}
	if n.Parent == nil {
		return "/" + n.Tag
	}
	b := x.boundary(n)
	prefix := ""
	if b.Parent != nil {
		prefix = x.of(root, b)
	}
	if name, v, ok := x.identify(n); ok {
		expr := prefix + "//" + n.Tag + "[@" + name + "=" + v + "]"
		res, err := xmltree.Select(root, expr)
		if err == nil && len(res) == 1 && res[0] == n {
			return expr
		}
	}
	var steps []string
	for p := n; p != b; p = p.Parent {
		steps = append(steps, x.step(p))
	}
	base := prefix
	if b.Parent == nil {
		base = "/" + b.Tag
	}
	var sb strings.Builder
	sb.WriteString(base)
	for i := len(steps) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(steps[i])
	}
	return sb.String()
}

// boundary returns the nearest strict ancestor of n which is a subtree
// boundary, or the root.
func (x *xpather) boundary(n *xmltree.Node) *xmltree.Node {
	p := n.Parent
	for ; p.Parent != nil; p = p.Parent {
		if x.isSubtree != nil && x.isSubtree(p) {
			return p
		}
	}
	return p
}

func (x *xpather) identify(n *xmltree.Node) (string, string, bool) {
	for _, name := range x.ident {
		v, ok := n.Get(name)
		if !ok {
			continue
		}
		if q, ok := quote(v); ok {
			return name, q, true
		}
	}
	return "", "", false
}

// step is the location step of n relative to its parent: the tag, the
// identifying attribute if any, and a position when siblings share both.
func (x *xpather) step(n *xmltree.Node) string {
	name, v, ok := x.identify(n)
	k, count := 0, 0
	for _, c := range n.Parent.Children {
		if c.Kind != xmltree.ElementKind || c.Tag != n.Tag {
			continue
		}
		if cv, has := c.Get(name); ok && (!has || cv != n.Attr(name)) {
			continue
		}
		count++
		if c == n {
			k = count
		}
	}
	var sb strings.Builder
	sb.WriteString(n.Tag)
	if ok {
		sb.WriteString("[@" + name + "=" + v + "]")
	}
	if count > 1 {
		sb.WriteString("[" + strconv.Itoa(k) + "]")
	}
	return sb.String()
}

// quote returns v as an XPath string literal. XPath 1.0 has no escapes, so
// values holding both quote characters cannot be written.
func quote(v string) (string, bool) {
	switch {
	case !strings.Contains(v, "'"):
		return "'" + v + "'", true
	case !strings.Contains(v, `"`):
		return `"` + v + `"`, true
	}
	return "", false
}

// withMeta adds meta-* copies of the attributes of n to spec.
func withMeta(spec, n *xmltree.Node) {
	for _, a := range n.Attrs {
		if a.Name == libdiff.KeyAttr {
			continue
		}
		spec.Set("meta-"+a.Name, a.Value)
	}
}
