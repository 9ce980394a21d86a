package xmldiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
	"github.com/signadot/xmldiff/xpatch"
)

// CheckResult is the outcome of applying the patch between two trees to
// the first one.
type CheckResult struct {
	Patch string
	Got   *xmltree.Node
	OK    bool
	// Diff is a line diff from the wanted tree to the one obtained, set
	// when they differ.
	Diff string
}

// Check diffs old and new, applies the patch to old and compares the
// outcome with new, without node keys.
func Check(old, new *xmltree.Node, opts ...xpatch.Option) (*CheckResult, error) {
	p, err := xpatch.NewDiffer(opts...).Patch(old, new, false)
	if err != nil {
		return nil, err
	}
	res := &CheckResult{Got: old.Clone()}
	if p != nil {
		res.Patch = p.String()
		res.Got, err = xpatch.Apply(old, p)
		if err != nil {
			return nil, err
		}
	}
	libdiff.StripNodeKeys(res.Got)
	want := libdiff.StripNodeKeys(new.Clone())
	res.OK = xmltree.Equal(res.Got, want)
	if !res.OK {
		res.Diff = LineDiff(want.Indented(2), res.Got.Indented(2))
	}
	return res, nil
}

// LineDiff renders the differences between a and b line by line, with
// "-" for lines of a only, "+" for lines of b only.
func LineDiff(a, b string) string {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	var buf strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(ln)
			if !strings.HasSuffix(ln, "\n") {
				buf.WriteByte('\n')
			}
		}
	}
	return buf.String()
}
