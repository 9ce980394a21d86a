package libdiff

import (
	"github.com/signadot/xmldiff/debug"
	"github.com/signadot/xmldiff/xmltree"
)

// NodeTracker records, for one diff, which old node keys survive, which
// moved, which removals wait for a descendant to be moved out, and the
// moving candidates: keyless empty new nodes which may stand for removed old
// nodes with the same candidate key.
//
// Candidate keys may be ambiguous. The first new node registered under a key
// is the one which can be resolved, and the first old node claiming a key
// wins.
type NodeTracker struct {
	keyFunc func(*xmltree.Node) string

	kept    map[string]bool
	moved   map[string]bool
	delayed map[string]bool

	candidates   map[string]*xmltree.Node
	references   map[string]*xmltree.Node
	elementToKey map[*xmltree.Node]string
	order        []*xmltree.Node
}

func NewNodeTracker(keyFunc func(*xmltree.Node) string) *NodeTracker {
	return &NodeTracker{
		keyFunc:      keyFunc,
		kept:         map[string]bool{},
		moved:        map[string]bool{},
		delayed:      map[string]bool{},
		candidates:   map[string]*xmltree.Node{},
		references:   map[string]*xmltree.Node{},
		elementToKey: map[*xmltree.Node]string{},
	}
}

func (t *NodeTracker) Keep(id string) {
	t.kept[id] = true
}

// Move marks id as kept at another place.
func (t *NodeTracker) Move(id string) {
	if debug.Tracker() {
		debug.Logf("tracker: move %s\n", id)
	}
	t.kept[id] = true
	t.moved[id] = true
}

func (t *NodeTracker) IsKept(id string) bool  { return t.kept[id] }
func (t *NodeTracker) IsMoved(id string) bool { return t.moved[id] }

// IsRemoved reports whether id is absent from the new tree. With
// includeDelayed false, ids whose removal is delayed are not reported.
func (t *NodeTracker) IsRemoved(id string, includeDelayed bool) bool {
	if t.kept[id] {
		return false
	}
	if !includeDelayed && t.delayed[id] {
		return false
	}
	return true
}

func (t *NodeTracker) DelayRemove(id string) {
	if debug.Tracker() {
		debug.Logf("tracker: delay removal of %s\n", id)
	}
	t.delayed[id] = true
}

func (t *NodeTracker) IsDelayed(id string) bool { return t.delayed[id] }

// MovingCandidate registers n, a keyless new node, and returns its
// candidate key. It returns "" when n has content or no key can be
// derived.
func (t *NodeTracker) MovingCandidate(n *xmltree.Node) string {
	if t.keyFunc == nil || n.HasContent() {
		return ""
	}
	key := t.keyFunc(n)
	if key == "" {
		return ""
	}
	if _, ok := t.candidates[key]; !ok {
		t.candidates[key] = n
	}
	t.elementToKey[n] = key
	t.order = append(t.order, n)
	if debug.Tracker() {
		debug.Logf("tracker: candidate %q: %s\n", key, n)
	}
	return key
}

// MovingReference registers old, a removed node of the old tree, under its
// candidate key and returns the new node registered under the same key, if
// any.
func (t *NodeTracker) MovingReference(old *xmltree.Node) *xmltree.Node {
	key := t.CandidateKey(old)
	if key == "" {
		return nil
	}
	if _, ok := t.references[key]; ok {
		return nil
	}
	t.references[key] = old
	t.elementToKey[old] = key
	return t.candidates[key]
}

// CandidateKey derives the candidate key of n without registering it.
func (t *NodeTracker) CandidateKey(n *xmltree.Node) string {
	if t.keyFunc == nil || n.HasContent() {
		return ""
	}
	return t.keyFunc(n)
}

// GetFromKey returns the old and new nodes matched under key.
func (t *NodeTracker) GetFromKey(key string) (old, new *xmltree.Node, ok bool) {
	old = t.references[key]
	new = t.candidates[key]
	if old == nil || new == nil {
		return nil, nil, false
	}
	return old, new, true
}

// KeyOf returns the candidate key under which n was registered.
func (t *NodeTracker) KeyOf(n *xmltree.Node) string {
	return t.elementToKey[n]
}

// Candidates returns the registered candidate nodes in discovery order.
func (t *NodeTracker) Candidates() []*xmltree.Node {
	return t.order
}

// IsResolvable reports whether n is the first candidate for its key.
func (t *NodeTracker) IsResolvable(n *xmltree.Node) bool {
	key, ok := t.elementToKey[n]
	return ok && t.candidates[key] == n
}
