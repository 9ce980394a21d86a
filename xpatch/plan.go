package xpatch

import (
	"slices"
	"strings"

	"github.com/signadot/xmldiff/debug"
	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
)

// gapPlan is what to do for one gap: delete the removed old elements, then
// insert the new leaves at pos relative to target. target is nil when
// there is nothing to insert.
type gapPlan struct {
	gap     *gap
	deletes []*xmltree.Node
	target  *xmltree.Node
	pos     libdiff.Position
}

// plan splits the children of a changed node at the pivots, the longest
// run of its own children left in the same order, and plans each gap
// between them. full is set when some gap cannot be expressed without
// disturbing the old text, and the whole node must be replaced.
func (s *synth) plan(ch *libdiff.Change, w *xmltree.Node) (plans []*gapPlan, full bool) {
	old := s.res.OriginalNodes[ch.ID]
	oldIndex := map[string]int{}
	oldIDs := []string{}
	for i, c := range old.Elements() {
		k := libdiff.KeyOf(c)
		oldIndex[k] = i
		oldIDs = append(oldIDs, k)
	}
	pivots := map[string]bool{}
	for _, i := range libdiff.LongestIncreasingSubsequence(s.keptIndices(ch, oldIndex)) {
		pivots[oldIDs[i]] = true
	}
	newGaps := groupByPivot(ch.NewLeaves, pivots)
	oldGaps := groupByPivot(ch.OldLeaves, pivots)
	if len(newGaps) != len(oldGaps) {
		return nil, true
	}
	for i, g := range newGaps {
		p, ok := s.planGap(w, oldGaps[i], g)
		if !ok {
			if debug.Patch() {
				debug.Logf("patch: gap %d of %s does not fit, replacing\n", i, ch.ID)
			}
			return nil, true
		}
		if p != nil {
			plans = append(plans, p)
		}
	}
	return plans, false
}

// keptIndices maps the kept nodes of ch to their index among the old
// children. A candidate key stands for the old node it rescued when the
// candidate is a child of the new node.
func (s *synth) keptIndices(ch *libdiff.Change, oldIndex map[string]int) []int {
	var seq []int
	seen := map[string]bool{}
	for _, k := range ch.KeptNodes {
		id := k
		if _, ok := oldIndex[k]; !ok {
			old, cand, ok := s.t.GetFromKey(k)
			if !ok || cand.Parent != ch.NewNode || libdiff.KeyOf(cand) != libdiff.KeyOf(old) {
				continue
			}
			id = libdiff.KeyOf(old)
		}
		i, ok := oldIndex[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		seq = append(seq, i)
	}
	return seq
}

func (s *synth) planGap(w *xmltree.Node, og, ng *gap) (*gapPlan, bool) {
	if slices.Equal(libdiff.Canonical(og.leaves), libdiff.Canonical(ng.leaves)) {
		return nil, true
	}
	var removed []*libdiff.NodeLeaf
	lingering := false
	for _, nl := range og.nodes() {
		if s.t.IsRemoved(nl.ID, false) {
			removed = append(removed, nl)
		} else {
			lingering = true
		}
	}
	p := &gapPlan{gap: ng}
	for _, nl := range removed {
		p.deletes = append(p.deletes, s.byKey[nl.ID])
	}
	oldText := libdiff.LeafText(og.leaves)

	if !ng.hasItems() {
		newText := libdiff.LeafText(ng.leaves)
		switch {
		case trimEqual(oldText, newText):
		case isBlank(oldText):
			p.target, p.pos = s.anchor(w, ng)
		default:
			return nil, false
		}
		return p, true
	}

	lead, trail := ng.leading(), ng.trailing()
	if len(removed) != 0 && !lingering {
		before, after := splitText(og.leaves, removed[0])
		lf, lok := fitText(before, textOf(lead))
		tf, tok := fitText(after, textOf(trail))
		if lok && tok {
			ignore(lead, libdiff.Replace, lf)
			ignore(trail, libdiff.Replace, tf)
			p.target, p.pos = p.deletes[0], libdiff.Replace
			p.deletes = p.deletes[1:]
			return p, true
		}
	}
	if ng.right != "" {
		if f, ok := fitText(oldText, textOf(lead)); ok {
			ignore(lead, libdiff.Before, f)
			p.target, p.pos = s.byKey[ng.right], libdiff.Before
			return p, true
		}
	}
	if ng.left != "" {
		if f, ok := fitText(oldText, textOf(trail)); ok {
			ignore(trail, libdiff.After, f)
			p.target, p.pos = s.byKey[ng.left], libdiff.After
			return p, true
		}
	}
	if ng.right == "" {
		if f, ok := fitText(oldText, textOf(lead)); ok {
			ignore(lead, libdiff.Inside, f)
			p.target, p.pos = w, libdiff.Inside
			return p, true
		}
	}
	return nil, false
}

// anchor picks where to insert the content of a gap without moving any
// old element around.
func (s *synth) anchor(w *xmltree.Node, g *gap) (*xmltree.Node, libdiff.Position) {
	switch {
	case g.right != "":
		return s.byKey[g.right], libdiff.Before
	case g.left != "":
		return s.byKey[g.left], libdiff.After
	}
	return w, libdiff.Inside
}

// fitText reports whether new text can stand next to old text which stays
// in place: either old is blank, or it already is the new text and new
// must not be written again (ignore).
func fitText(old, new string) (ignore, ok bool) {
	switch {
	case isBlank(old):
		return false, true
	case trimEqual(old, new):
		return true, true
	}
	return false, false
}

func ignore(t *libdiff.TextLeaf, pos libdiff.Position, yes bool) {
	if t != nil && yes {
		t.Ignore(pos)
	}
}

// splitText returns the old text before and after the element leaf at.
func splitText(leaves []libdiff.Leaf, at *libdiff.NodeLeaf) (string, string) {
	var before, after strings.Builder
	cur := &before
	for _, l := range leaves {
		switch x := l.(type) {
		case *libdiff.TextLeaf:
			cur.WriteString(x.Text)
		case *libdiff.NodeLeaf:
			if x == at {
				cur = &after
			}
		}
	}
	return before.String(), after.String()
}

func trimEqual(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
