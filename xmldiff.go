// Package xmldiff computes XPath patches between two versions of an XML
// tree whose elements carry node keys.
//
// The usual flow stamps keys on the original tree, lets a caller edit a
// copy, then diffs the two:
//
//	old := libdiff.AssignNodeKeys(xmltree.MustParse(src))
//	patch, err := xmldiff.DiffXPath(old, edited, false)
package xmldiff

import (
	"github.com/signadot/xmldiff/debug"
	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
	"github.com/signadot/xmldiff/xpatch"
)

// DiffXPath returns the patch document turning old into new, "" when they
// do not differ.
func DiffXPath(old, new *xmltree.Node, flat bool, opts ...xpatch.Option) (string, error) {
	return xpatch.NewDiffer(opts...).DiffXPath(old, new, flat)
}

// Diff returns the change records between old and new.
func Diff(old, new *xmltree.Node, opts ...xpatch.Option) (*libdiff.Result, error) {
	return xpatch.NewDiffer(opts...).Diff(old, new)
}

// Keys parses src and stamps node keys on all its elements.
func Keys(src string) (*xmltree.Node, error) {
	n, err := xmltree.Parse(src)
	if err != nil {
		return nil, err
	}
	if debug.Analyze() {
		debug.Logf("keys: %d elements\n", len(n.Iter()))
	}
	return libdiff.AssignNodeKeys(n), nil
}
