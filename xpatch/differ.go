package xpatch

import (
	"strings"

	"github.com/signadot/xmldiff/debug"
	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
)

// Differ turns the change records of a libdiff.Analyzer into a patch
// document of <xpath> specs which, applied to the old tree, gives the new
// one.
//
// A Differ holds only configuration and may be shared.
type Differ struct {
	cfg      Config
	analyzer *libdiff.Analyzer
}

func NewDiffer(opts ...Option) *Differ {
	d := &Differ{cfg: Config{IdentifyingAttrs: DefaultIdentifyingAttrs}}
	for _, opt := range opts {
		opt(&d.cfg)
	}
	d.analyzer = libdiff.NewAnalyzer(d.cfg.Analyze...)
	return d
}

func (d *Differ) Config() Config {
	return d.cfg
}

// Diff returns the change records between old and new.
func (d *Differ) Diff(old, new *xmltree.Node) (*libdiff.Result, error) {
	return d.analyzer.Diff(old, new)
}

// DiffXPath returns the serialized patch document turning old into new,
// "" when they do not differ. With flat, all specs are direct children of
// the root <data> element; otherwise the specs of each change are grouped
// in a nested <data>.
func (d *Differ) DiffXPath(old, new *xmltree.Node, flat bool) (string, error) {
	p, err := d.Patch(old, new, flat)
	if err != nil || p == nil {
		return "", err
	}
	return p.String(), nil
}

func (d *Differ) DiffXPathStrings(old, new string, flat bool) (string, error) {
	o, err := xmltree.Parse(old)
	if err != nil {
		return "", err
	}
	n, err := xmltree.Parse(new)
	if err != nil {
		return "", err
	}
	return d.DiffXPath(o, n, flat)
}

// Patch returns the patch document turning old into new, or nil.
func (d *Differ) Patch(old, new *xmltree.Node, flat bool) (*xmltree.Node, error) {
	res, err := d.analyzer.Diff(old, new)
	if err != nil {
		return nil, err
	}
	s := d.newSynth(res)
	s.rescue()
	s.delayRemovals()
	for _, ch := range res.Changes {
		s.begin()
		if err := s.handleChange(ch); err != nil {
			return nil, err
		}
	}
	s.begin()
	if err := s.removeDelayed(); err != nil {
		return nil, err
	}
	return s.document(flat), nil
}

// synth is the state of one patch synthesis. work is a copy of the old
// tree kept in the state a consumer sees after applying the specs emitted
// so far; expressions are computed against it.
type synth struct {
	cfg  *Config
	acfg libdiff.Config
	res  *libdiff.Result
	t    *libdiff.NodeTracker
	xp   *xpather

	root    *xmltree.Node
	work    *xmltree.Node
	byKey   map[string]*xmltree.Node
	patched map[string]bool

	bundles [][]*xmltree.Node
}

func (d *Differ) newSynth(res *libdiff.Result) *synth {
	acfg := d.analyzer.Config()
	isSubtree := d.cfg.IsSubtree
	if isSubtree == nil {
		isSubtree = acfg.IsSubtree
	}
	s := &synth{
		cfg:     &d.cfg,
		acfg:    acfg,
		res:     res,
		t:       res.Tracker,
		xp:      &xpather{isSubtree: isSubtree, ident: d.cfg.IdentifyingAttrs},
		root:    res.OriginalNodes[libdiff.KeyOf(res.New)],
		work:    res.Old.Clone(),
		byKey:   map[string]*xmltree.Node{},
		patched: map[string]bool{},
	}
	for _, n := range s.work.Iter() {
		if k := libdiff.KeyOf(n); k != "" {
			s.byKey[k] = n
		}
	}
	return s
}

// rescue gives the key of each removed node to the moving candidate
// standing for it, turning the removal into a move.
func (s *synth) rescue() {
	for _, ch := range s.res.Changes {
		for _, id := range ch.RemovedNodes {
			if !s.t.IsRemoved(id, true) {
				continue
			}
			cand := s.t.MovingReference(s.res.OriginalNodes[id])
			if cand == nil || libdiff.KeyOf(cand) != "" {
				continue
			}
			if debug.Patch() {
				debug.Logf("patch: %s rescued by %s\n", id, cand)
			}
			cand.Set(libdiff.KeyAttr, id)
			s.t.Move(id)
		}
	}
}

// delayRemovals delays the removal of every removed ancestor of a kept
// node, so that the kept node can be moved out first.
func (s *synth) delayRemovals() {
	for _, n := range s.root.Iter() {
		if !s.t.IsKept(libdiff.KeyOf(n)) {
			continue
		}
		// All removed ancestors are delayed; removeDelayed deletes only
		// the topmost ones.
		for p := n.Parent; p != nil && p != s.root.Parent; p = p.Parent {
			if pid := libdiff.KeyOf(p); s.t.IsRemoved(pid, true) {
				s.t.DelayRemove(pid)
			}
		}
	}
}

// removeDelayed removes the topmost delayed nodes, in document order.
func (s *synth) removeDelayed() error {
	for _, n := range s.root.Iter() {
		id := libdiff.KeyOf(n)
		if !s.t.IsDelayed(id) || !s.t.IsRemoved(id, true) {
			continue
		}
		if s.t.IsRemoved(libdiff.KeyOf(n.Parent), true) {
			continue
		}
		if err := s.emit(s.byKey[id], libdiff.Replace, newBody()); err != nil {
			return err
		}
	}
	return nil
}

func (s *synth) handleChange(ch *libdiff.Change) error {
	if s.t.IsRemoved(ch.ID, true) {
		return nil
	}
	w := s.byKey[ch.ID]
	var (
		plans []*gapPlan
		full  bool
	)
	switch {
	case ch.TagChanged:
		full = true
	case ch.LeavesChanged:
		plans, full = s.plan(ch, w)
	}
	if full {
		if err := s.replaceNode(ch, w); err != nil {
			return err
		}
		return s.patchCandidates(ch)
	}
	if len(ch.Attributes) != 0 {
		if err := s.emit(w, libdiff.Attributes, attributesBody(ch.Attributes)); err != nil {
			return err
		}
	}
	for _, p := range plans {
		for _, n := range p.deletes {
			if err := s.emit(n, libdiff.Replace, newBody()); err != nil {
				return err
			}
		}
		if p.target == nil {
			continue
		}
		if err := s.emit(p.target, p.pos, s.gapBody(p.gap, p.pos)); err != nil {
			return err
		}
	}
	return s.patchCandidates(ch)
}

// patchCandidates sets the attributes of rescued nodes to those of the
// candidates standing for them.
func (s *synth) patchCandidates(ch *libdiff.Change) error {
	for _, cm := range ch.CandidatesMove {
		if s.patched[cm.Key] {
			continue
		}
		old, cand, ok := s.t.GetFromKey(cm.Key)
		if !ok {
			continue
		}
		id := libdiff.KeyOf(old)
		if libdiff.KeyOf(cand) != id {
			continue
		}
		s.patched[cm.Key] = true
		attrs := libdiff.AttributeChanges(&s.acfg, old, cand)
		if len(attrs) == 0 {
			continue
		}
		if err := s.emit(s.byKey[id], libdiff.Attributes, attributesBody(attrs)); err != nil {
			return err
		}
	}
	return nil
}

// replaceNode replaces the working element w by a copy of the new node.
// Its keyed children are moved in, and children still needed elsewhere
// are carried along at the end until their own spec takes them.
func (s *synth) replaceNode(ch *libdiff.Change, w *xmltree.Node) error {
	if debug.Patch() {
		debug.Logf("patch: replacing %s\n", ch.ID)
	}
	nn := ch.NewNode
	b := newBody()
	o := nn.ShallowClone()
	o.Del(libdiff.KeyAttr)
	wk := o.ShallowClone()
	wk.Set(libdiff.KeyAttr, ch.ID)
	o.Text = nn.Text
	wk.Text = nn.Text
	b.out.Append(o)
	b.work.Append(wk)
	b.addChildren(o, wk, nn, s.byKey)

	placed := map[*xmltree.Node]bool{}
	for _, m := range b.moves {
		placed[m.node] = true
	}
	for _, c := range w.Elements() {
		id := libdiff.KeyOf(c)
		if id == "" || placed[c] {
			continue
		}
		if s.t.IsKept(id) || s.t.IsDelayed(id) {
			b.addMove(o, wk, c)
		}
	}
	if err := s.emit(w, libdiff.Replace, b); err != nil {
		return err
	}
	s.byKey[ch.ID] = wk
	return nil
}

func attributesBody(attrs []libdiff.AttrChange) *body {
	b := newBody()
	for _, a := range attrs {
		o := xmltree.NewElement("attribute", xmltree.Attr{Name: "name", Value: a.Name})
		if !a.Removed {
			o.Text = a.Value
		}
		b.out.Append(o)
		b.work.Append(o.Clone())
	}
	return b
}

// gapBody builds the content inserted for the new leaves of a gap.
func (s *synth) gapBody(g *gap, pos libdiff.Position) *body {
	b := newBody()
	for _, l := range g.leaves {
		switch x := l.(type) {
		case *libdiff.TextLeaf:
			if !x.Ignored(pos) {
				b.text(x.Text)
			}
		case *libdiff.NodeLeaf:
			if n := s.byKey[leafID(x)]; n != nil {
				b.addMove(b.out, b.work, n)
				continue
			}
			b.addNew(b.out, b.work, x.Node, s.byKey)
		case *libdiff.CommentLeaf:
			b.addComment(b.out, b.work, x.Node)
		}
	}
	return b
}

func (s *synth) begin() {
	s.bundles = append(s.bundles, nil)
}

// emit writes a spec for target to the current bundle and applies it to
// the working tree. Specs inserting nothing are dropped.
func (s *synth) emit(target *xmltree.Node, pos libdiff.Position, b *body) error {
	if pos != libdiff.Replace && b.empty() {
		return nil
	}
	spec := xmltree.NewElement("xpath",
		xmltree.Attr{Name: "expr", Value: s.xp.of(s.work, target)},
		xmltree.Attr{Name: "position", Value: pos.String()})
	if s.cfg.XPathWithMeta {
		withMeta(spec, target)
	}
	resolve := func(ph *xmltree.Node) (*xmltree.Node, error) {
		m := b.moves[ph]
		m.out.Set("expr", s.xp.of(s.work, m.node))
		return m.node, nil
	}
	newRoot, err := applySpec(target, pos, b.work, resolve)
	if err != nil {
		return err
	}
	if newRoot != nil {
		s.work = newRoot
	}
	text, cs := b.outContent()
	spec.Text = text
	spec.Append(cs...)
	if debug.Patch() {
		debug.Logf("patch: %s\n", spec)
	}
	last := len(s.bundles) - 1
	s.bundles[last] = append(s.bundles[last], spec)
	return nil
}

// document assembles the bundles, nil when there is nothing to apply.
func (s *synth) document(flat bool) *xmltree.Node {
	var res *xmltree.Node
	for _, specs := range s.bundles {
		if len(specs) == 0 {
			continue
		}
		if res == nil {
			res = xmltree.NewElement("data")
		}
		if flat {
			res.Append(specs...)
			continue
		}
		d := xmltree.NewElement("data")
		d.Append(specs...)
		res.Append(d)
	}
	return res
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
