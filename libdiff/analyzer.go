package libdiff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/xmldiff/debug"
	"github.com/signadot/xmldiff/xmltree"
)

// AttrChange is the new value of an attribute, or its removal.
type AttrChange struct {
	Name    string
	Value   string
	Removed bool
}

// CandidateMove is a moving candidate found among the new children of a
// node. InNewSubtree is set when it was found inside a new element.
type CandidateMove struct {
	Key          string
	InNewSubtree bool
}

// Change describes how a surviving old node differs in the new tree.
// OldLeaves, KeptNodes, RemovedNodes and CandidatesMove are only set when
// LeavesChanged is. A renamed node has TagChanged and LeavesChanged set.
//
// KeptNodes lists, in new order, the keys of the old children still in
// place and the candidate keys of the moving candidates among the new
// children.
type Change struct {
	ID            string
	Attributes    []AttrChange
	NewNode       *xmltree.Node
	NewLeaves     []Leaf
	LeavesChanged bool
	TagChanged    bool

	OldLeaves      []Leaf
	KeptNodes      []string
	RemovedNodes   []string
	CandidatesMove []CandidateMove
}

// Result is the outcome of Analyzer.Diff. Changes are in visit order;
// OriginalNodes maps every key to its element in Old, which is never
// modified.
type Result struct {
	Changes       []*Change
	OriginalNodes map[string]*xmltree.Node
	Tracker       *NodeTracker
	Old           *xmltree.Node
	New           *xmltree.Node

	byID map[string]*Change
}

func (r *Result) Change(id string) *Change {
	return r.byID[id]
}

// Analyzer computes the change records between an old tree carrying node
// keys and a new tree derived from it.
type Analyzer struct {
	cfg Config
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(&a.cfg)
	}
	return a
}

func (a *Analyzer) Config() Config {
	return a.cfg
}

// DiffStrings parses old and new and diffs them.
func (a *Analyzer) DiffStrings(old, new string) (*Result, error) {
	o, err := xmltree.Parse(old)
	if err != nil {
		return nil, err
	}
	n, err := xmltree.Parse(new)
	if err != nil {
		return nil, err
	}
	return a.Diff(o, n)
}

// Diff walks old and new in lock step by node key. Both trees are copied;
// the callers' trees are not modified.
func (a *Analyzer) Diff(old, new *xmltree.Node) (*Result, error) {
	s := &analysis{
		cfg: &a.cfg,
		res: &Result{
			Old:           old.Clone(),
			New:           new.Clone(),
			OriginalNodes: map[string]*xmltree.Node{},
			Tracker:       NewNodeTracker(a.cfg.MovingCandidateKey),
			byID:          map[string]*Change{},
		},
		seen: map[string]bool{},
	}
	for _, n := range s.res.Old.Iter() {
		if k := KeyOf(n); k != "" {
			s.res.OriginalNodes[k] = n
		}
	}
	rootKey := KeyOf(s.res.New)
	oldRoot := s.res.OriginalNodes[rootKey]
	if oldRoot == nil {
		return nil, fmt.Errorf("%w: new root <%s> has key %q", ErrMissingKey, s.res.New.Tag, rootKey)
	}
	s.seen[rootKey] = true
	s.res.Tracker.Keep(rootKey)
	s.visit(oldRoot, s.res.New)
	s.notifyNew()
	return s.res, nil
}

type analysis struct {
	cfg  *Config
	res  *Result
	seen map[string]bool
	// discovered holds the keyless new elements, moving candidates
	// included, in discovery order.
	discovered []*xmltree.Node
}

type pair struct {
	old, new *xmltree.Node
}

// resolveKey returns the key of a new element if it refers to an old node
// not seen yet in the new tree, and strips stale or duplicate keys.
func (s *analysis) resolveKey(n *xmltree.Node) string {
	k := KeyOf(n)
	if k == "" {
		return ""
	}
	if s.res.OriginalNodes[k] == nil || s.seen[k] {
		n.Del(KeyAttr)
		return ""
	}
	s.seen[k] = true
	return k
}

func (s *analysis) visit(old, new *xmltree.Node) {
	id := KeyOf(old)
	attrs := AttributeChanges(s.cfg, old, new)

	var (
		oldChildren = map[string]bool{}
		oldComments = map[string]bool{}
		removed     []string
		removedSet  = map[string]bool{}
	)
	for _, c := range old.Children {
		switch c.Kind {
		case xmltree.ElementKind:
			k := KeyOf(c)
			oldChildren[k] = true
			removed = append(removed, k)
			removedSet[k] = true
		case xmltree.CommentKind:
			oldComments[c.Text] = true
		}
	}

	var (
		leaves = appendText(nil, new.Text)
		kept   []string
		cands  []CandidateMove
		pairs  []pair
	)
	for _, c := range new.Children {
		if c.Kind == xmltree.CommentKind {
			if !oldComments[c.Text] {
				leaves = append(leaves, &CommentLeaf{Node: c})
			}
			leaves = appendText(leaves, c.Tail)
			continue
		}
		k := s.resolveKey(c)
		switch {
		case k != "" && oldChildren[k]:
			leaves = append(leaves, &NodeLeaf{Node: c, ID: k, Owned: true})
			delete(removedSet, k)
			s.res.Tracker.Keep(k)
			kept = append(kept, k)
			pairs = append(pairs, pair{s.res.OriginalNodes[k], c})
		case k != "":
			leaves = append(leaves, &NodeLeaf{Node: c, ID: k})
			s.res.Tracker.Move(k)
			pairs = append(pairs, pair{s.res.OriginalNodes[k], c})
		default:
			leaves = append(leaves, &NodeLeaf{Node: c})
			s.discovered = append(s.discovered, c)
			if ck := s.res.Tracker.MovingCandidate(c); ck != "" {
				kept = append(kept, ck)
				cands = append(cands, CandidateMove{Key: ck})
				break
			}
			s.scanNew(c, &pairs, &cands)
		}
		leaves = appendText(leaves, c.Tail)
	}

	oldLeaves := OldLeaves(old)
	renamed := old.Tag != new.Tag
	changed := renamed || !slices.Equal(Canonical(oldLeaves), Canonical(leaves))
	if changed || len(attrs) != 0 {
		ch := &Change{
			ID:            id,
			Attributes:    attrs,
			NewNode:       new,
			NewLeaves:     leaves,
			LeavesChanged: changed,
			TagChanged:    renamed,
		}
		if changed {
			ch.OldLeaves = oldLeaves
			ch.KeptNodes = kept
			ch.CandidatesMove = cands
			for _, k := range removed {
				if removedSet[k] {
					ch.RemovedNodes = append(ch.RemovedNodes, k)
				}
			}
		}
		if debug.Analyze() {
			debug.Logf("analyze: change on %s attrs=%d leaves changed=%t removed=%v\n", id, len(attrs), changed, ch.RemovedNodes)
		}
		s.res.Changes = append(s.res.Changes, ch)
		s.res.byID[id] = ch
	}
	for _, p := range pairs {
		s.visit(p.old, p.new)
	}
}

// scanNew looks inside a new element for relocated keyed elements and for
// moving candidates.
func (s *analysis) scanNew(n *xmltree.Node, pairs *[]pair, cands *[]CandidateMove) {
	for _, c := range n.Children {
		if c.Kind != xmltree.ElementKind {
			continue
		}
		if k := s.resolveKey(c); k != "" {
			s.res.Tracker.Move(k)
			*pairs = append(*pairs, pair{s.res.OriginalNodes[k], c})
			continue
		}
		s.discovered = append(s.discovered, c)
		if ck := s.res.Tracker.MovingCandidate(c); ck != "" {
			*cands = append(*cands, CandidateMove{Key: ck, InNewSubtree: true})
			continue
		}
		s.scanNew(c, pairs, cands)
	}
}

// notifyNew calls OnNewNode for the discovered elements in discovery order,
// leaving out the moving candidates which a removed old node can claim.
func (s *analysis) notifyNew() {
	if s.cfg.OnNewNode == nil {
		return
	}
	t := s.res.Tracker
	claimable := map[string]bool{}
	for _, ch := range s.res.Changes {
		for _, id := range ch.RemovedNodes {
			if !t.IsRemoved(id, true) {
				continue
			}
			if k := t.CandidateKey(s.res.OriginalNodes[id]); k != "" {
				claimable[k] = true
			}
		}
	}
	for _, n := range s.discovered {
		if t.IsResolvable(n) && claimable[t.KeyOf(n)] {
			continue
		}
		s.cfg.newNode(n)
	}
}

// AttributeChanges lists, sorted by name, the attributes of new which differ
// from those of old.
func AttributeChanges(cfg *Config, old, new *xmltree.Node) []AttrChange {
	var res []AttrChange
	oldAttrs := old.AttrMap()
	for _, a := range new.Attrs {
		if cfg.ignored(new, a.Name) {
			continue
		}
		if v, ok := oldAttrs[a.Name]; ok && v == a.Value {
			continue
		}
		res = append(res, AttrChange{Name: a.Name, Value: a.Value})
	}
	for _, a := range old.Attrs {
		if cfg.ignored(old, a.Name) {
			continue
		}
		if _, ok := new.Get(a.Name); !ok {
			res = append(res, AttrChange{Name: a.Name, Removed: true})
		}
	}
	slices.SortFunc(res, func(a, b AttrChange) int { return strings.Compare(a.Name, b.Name) })
	return res
}
