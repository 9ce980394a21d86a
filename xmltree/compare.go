package xmltree

import (
	"maps"
	"slices"
	"strings"
)

// UnorderedTags lists the tags whose element children are compared
// regardless of order by Equal.
var UnorderedTags = map[string]bool{"record": true}

// Equal reports whether a and b are structurally equal: same tag, same
// attribute set, same trimmed character data and equal element children.
// Comments are ignored; the text around a comment is joined.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == CommentKind {
		return strings.TrimSpace(a.Text) == strings.TrimSpace(b.Text)
	}
	if a.Tag != b.Tag {
		return false
	}
	if !maps.Equal(a.AttrMap(), b.AttrMap()) {
		return false
	}
	aTexts, aElts := segments(a)
	bTexts, bElts := segments(b)
	if len(aElts) != len(bElts) {
		return false
	}
	if UnorderedTags[a.Tag] {
		slices.Sort(aTexts)
		slices.Sort(bTexts)
		if !slices.Equal(aTexts, bTexts) {
			return false
		}
		return unorderedEqual(aElts, bElts)
	}
	if !slices.Equal(aTexts, bTexts) {
		return false
	}
	for i := range aElts {
		if !Equal(aElts[i], bElts[i]) {
			return false
		}
	}
	return true
}

func unorderedEqual(as, bs []*Node) bool {
	used := make([]bool, len(bs))
outer:
	for _, x := range as {
		for j, y := range bs {
			if used[j] {
				continue
			}
			if Equal(x, y) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// segments returns the trimmed character data runs of n around its element
// children: texts[i] precedes elts[i] and len(texts) == len(elts)+1.
func segments(n *Node) (texts []string, elts []*Node) {
	var b strings.Builder
	b.WriteString(n.Text)
	for _, c := range n.Children {
		if c.Kind == ElementKind {
			texts = append(texts, strings.TrimSpace(b.String()))
			b.Reset()
			elts = append(elts, c)
		}
		b.WriteString(c.Tail)
	}
	texts = append(texts, strings.TrimSpace(b.String()))
	return texts, elts
}
