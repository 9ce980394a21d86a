package xpatch

import (
	"github.com/signadot/xmldiff/libdiff"
)

// gap holds the leaves between two consecutive pivots. left and right are
// the pivot keys bounding it, "" at either end.
type gap struct {
	left, right string
	leaves      []libdiff.Leaf
}

// groupByPivot splits leaves at the pivot nodes. There is one more gap than
// there are pivots.
func groupByPivot(leaves []libdiff.Leaf, pivots map[string]bool) []*gap {
	gaps := []*gap{{}}
	for _, l := range leaves {
		if nl, ok := l.(*libdiff.NodeLeaf); ok {
			if k := leafID(nl); k != "" && pivots[k] {
				gaps[len(gaps)-1].right = k
				gaps = append(gaps, &gap{left: k})
				continue
			}
		}
		last := gaps[len(gaps)-1]
		last.leaves = append(last.leaves, l)
	}
	return gaps
}

// leafID returns the key of the element of a leaf, which may have been
// given one after the analysis when it rescued a removed node.
func leafID(nl *libdiff.NodeLeaf) string {
	if nl.ID != "" {
		return nl.ID
	}
	return libdiff.KeyOf(nl.Node)
}

// nodes returns the element leaves of g.
func (g *gap) nodes() []*libdiff.NodeLeaf {
	var res []*libdiff.NodeLeaf
	for _, l := range g.leaves {
		if nl, ok := l.(*libdiff.NodeLeaf); ok {
			res = append(res, nl)
		}
	}
	return res
}

func (g *gap) hasItems() bool {
	for _, l := range g.leaves {
		if _, ok := l.(*libdiff.TextLeaf); !ok {
			return true
		}
	}
	return false
}

// leading returns the text leaf before the first item, if any.
func (g *gap) leading() *libdiff.TextLeaf {
	if len(g.leaves) == 0 {
		return nil
	}
	t, _ := g.leaves[0].(*libdiff.TextLeaf)
	return t
}

// trailing returns the text leaf after the last item, if any.
func (g *gap) trailing() *libdiff.TextLeaf {
	if len(g.leaves) == 0 || !g.hasItems() {
		return nil
	}
	t, _ := g.leaves[len(g.leaves)-1].(*libdiff.TextLeaf)
	return t
}

func textOf(t *libdiff.TextLeaf) string {
	if t == nil {
		return ""
	}
	return t.Text
}
