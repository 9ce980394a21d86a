// Package libdiff provides change analysis between two versions of a keyed
// XML tree.
//
// # Usage
//
//	old := libdiff.AssignNodeKeys(xmltree.MustParse(src))
//	new := edit(old.Clone())
//	res, err := libdiff.NewAnalyzer().Diff(old, new)
//
// Every element of the old tree carries its key in the KeyAttr attribute.
// The new tree keeps the keys of the elements it keeps, wherever they went;
// keyless elements are new. The result lists one Change per surviving old
// element whose attributes or children differ, in the order the new tree is
// walked.
//
// # Related Packages
//
//   - github.com/signadot/xmldiff/xmltree - the tree
//   - github.com/signadot/xmldiff/xpatch - patch synthesis from a Result
package libdiff
