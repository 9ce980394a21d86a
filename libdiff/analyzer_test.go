package libdiff

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/xmldiff/xmltree"
)

func analyze(t *testing.T, old, new string, opts ...Option) *Result {
	t.Helper()
	res, err := NewAnalyzer(opts...).Diff(AssignNodeKeys(xmltree.MustParse(old)), xmltree.MustParse(new))
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func changeIDs(res *Result) []string {
	var ids []string
	for _, ch := range res.Changes {
		ids = append(ids, ch.ID)
	}
	return ids
}

func TestAnalyzeNoChange(t *testing.T) {
	res := analyze(t,
		`<form>text<field name="a"/>tail</form>`,
		"<form __diff_key__=\"0\">\n  text <field __diff_key__=\"1\" name=\"a\"/> tail\n</form>")
	if len(res.Changes) != 0 {
		t.Errorf("got changes %v", changeIDs(res))
	}
}

func TestAnalyzeAttributes(t *testing.T) {
	res := analyze(t,
		`<form><field name="a" string="A" invisible="1"/></form>`,
		`<form __diff_key__="0"><field __diff_key__="1" name="b" string="A" required="1"/></form>`)
	if diff := cmp.Diff([]string{"1"}, changeIDs(res)); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
	ch := res.Change("1")
	want := []AttrChange{
		{Name: "invisible", Removed: true},
		{Name: "name", Value: "b"},
		{Name: "required", Value: "1"},
	}
	if diff := cmp.Diff(want, ch.Attributes); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if ch.LeavesChanged {
		t.Error("leaves changed")
	}
}

func TestAnalyzeIgnoreAttributes(t *testing.T) {
	res := analyze(t,
		`<form><field name="a" modifiers="x"/></form>`,
		`<form __diff_key__="0"><field __diff_key__="1" name="a" modifiers="y"/></form>`,
		IgnoreAttributeNames("modifiers"))
	if len(res.Changes) != 0 {
		t.Errorf("got changes %v", changeIDs(res))
	}
}

func TestAnalyzeAppend(t *testing.T) {
	var added []string
	res := analyze(t,
		`<form><field name="a"/></form>`,
		`<form __diff_key__="0"><field __diff_key__="1" name="a"/><group><field name="b"/></group></form>`,
		OnNewNode(func(n *xmltree.Node) { added = append(added, n.Tag) }))
	if diff := cmp.Diff([]string{"0"}, changeIDs(res)); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
	ch := res.Change("0")
	if !ch.LeavesChanged || len(ch.NewLeaves) != 2 || len(ch.RemovedNodes) != 0 {
		t.Errorf("got %+v", ch)
	}
	if diff := cmp.Diff([]string{"group", "field"}, added); diff != "" {
		t.Errorf("new nodes (-want +got)\n%s", diff)
	}
}

func TestAnalyzeRemove(t *testing.T) {
	res := analyze(t,
		`<form><field name="a"/><group><field name="b"/></group></form>`,
		`<form __diff_key__="0"><field __diff_key__="1" name="a"/></form>`)
	ch := res.Change("0")
	if ch == nil {
		t.Fatal("no change on root")
	}
	if diff := cmp.Diff([]string{"2"}, ch.RemovedNodes); diff != "" {
		t.Errorf("removed (-want +got)\n%s", diff)
	}
	for _, id := range []string{"2", "3"} {
		if !res.Tracker.IsRemoved(id, false) {
			t.Errorf("%s not removed", id)
		}
	}
}

func TestAnalyzeMove(t *testing.T) {
	res := analyze(t,
		`<form><group name="g1"><field name="a"/></group><group name="g2"/></form>`,
		`<form __diff_key__="0"><group __diff_key__="1" name="g1"/><group __diff_key__="3" name="g2"><field __diff_key__="2" name="a"/></group></form>`)
	if diff := cmp.Diff([]string{"1", "3"}, changeIDs(res)); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
	if !res.Tracker.IsMoved("2") || !res.Tracker.IsKept("2") {
		t.Error("2 not moved")
	}
	if res.Tracker.IsRemoved("2", true) {
		t.Error("moved node reported removed")
	}
	leaves := res.Change("3").NewLeaves
	nl, ok := leaves[0].(*NodeLeaf)
	if len(leaves) != 1 || !ok || nl.ID != "2" || nl.Owned {
		t.Errorf("got leaves %v", leaves)
	}
}

func TestAnalyzeReorder(t *testing.T) {
	res := analyze(t,
		`<form><field name="a"/><field name="b"/></form>`,
		`<form __diff_key__="0"><field __diff_key__="2" name="b"/><field __diff_key__="1" name="a"/></form>`)
	ch := res.Change("0")
	if ch == nil || !ch.LeavesChanged {
		t.Fatal("reorder not detected")
	}
	if diff := cmp.Diff([]string{"2", "1"}, ch.KeptNodes); diff != "" {
		t.Errorf("kept (-want +got)\n%s", diff)
	}
	if res.Tracker.IsMoved("1") || res.Tracker.IsMoved("2") {
		t.Error("reordered children are not moves")
	}
}

func TestAnalyzeComments(t *testing.T) {
	res := analyze(t,
		`<form><!-- old --><field name="a"/></form>`,
		`<form __diff_key__="0"><!-- old --><field __diff_key__="1" name="a"/></form>`)
	if len(res.Changes) != 0 {
		t.Fatalf("got changes %v", changeIDs(res))
	}
	res = analyze(t,
		`<form><field name="a"/></form>`,
		`<form __diff_key__="0"><field __diff_key__="1" name="a"/><!-- new --></form>`)
	ch := res.Change("0")
	if ch == nil {
		t.Fatal("comment insertion not detected")
	}
	if _, ok := ch.NewLeaves[1].(*CommentLeaf); !ok {
		t.Errorf("got leaves %v", ch.NewLeaves)
	}
}

func TestAnalyzeTextChange(t *testing.T) {
	res := analyze(t,
		`<form><p>hello</p></form>`,
		`<form __diff_key__="0"><p __diff_key__="1">world</p></form>`)
	if diff := cmp.Diff([]string{"1"}, changeIDs(res)); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
}

func TestAnalyzeTagChange(t *testing.T) {
	res := analyze(t,
		`<form><group name="g"/></form>`,
		`<form __diff_key__="0"><page __diff_key__="1" name="g"/></form>`)
	ch := res.Change("1")
	if ch == nil || !ch.TagChanged || !ch.LeavesChanged {
		t.Errorf("got %+v", ch)
	}
	if res.Change("0") != nil {
		t.Error("parent changed")
	}
}

func TestAnalyzeDuplicateKey(t *testing.T) {
	res := analyze(t,
		`<form><field name="a"/></form>`,
		`<form __diff_key__="0"><field __diff_key__="1" name="a"/><field __diff_key__="1" name="a"/><field __diff_key__="42"/></form>`)
	ch := res.Change("0")
	if ch == nil {
		t.Fatal("no change")
	}
	var ids []string
	for _, l := range ch.NewLeaves {
		if nl, ok := l.(*NodeLeaf); ok {
			ids = append(ids, nl.ID)
		}
	}
	if diff := cmp.Diff([]string{"1", "", ""}, ids); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	for _, n := range res.New.Elements()[1:] {
		if KeyOf(n) != "" {
			t.Errorf("stale key kept on %s", n)
		}
	}
}

func TestAnalyzeMissingKey(t *testing.T) {
	_, err := NewAnalyzer().DiffStrings(`<form/>`, `<form/>`)
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("got %v", err)
	}
}

func TestAnalyzeDoesNotModifyInputs(t *testing.T) {
	old := AssignNodeKeys(xmltree.MustParse(`<form><field/></form>`))
	new := xmltree.MustParse(`<form __diff_key__="0"><field __diff_key__="1"/><field __diff_key__="1"/></form>`)
	ob, nb := old.String(), new.String()
	if _, err := NewAnalyzer().Diff(old, new); err != nil {
		t.Fatal(err)
	}
	if old.String() != ob || new.String() != nb {
		t.Error("inputs modified")
	}
}

func TestAnalyzeCandidates(t *testing.T) {
	var added []string
	res := analyze(t,
		`<form><group name="g1"><field name="x"/></group><group name="g2"/></form>`,
		`<form __diff_key__="0"><group __diff_key__="1" name="g1"/><group __diff_key__="3" name="g2"><field name="x"/><field name="y"/></group></form>`,
		MovingCandidateKey(SignatureKey(nil)),
		OnNewNode(func(n *xmltree.Node) { added = append(added, n.Attr("name")) }))
	ch := res.Change("3")
	if ch == nil {
		t.Fatal("no change on g2")
	}
	want := []CandidateMove{{Key: "|field|name=x"}, {Key: "|field|name=y"}}
	if diff := cmp.Diff(want, ch.CandidatesMove); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if diff := cmp.Diff([]string{"y"}, added); diff != "" {
		t.Errorf("new nodes (-want +got)\n%s", diff)
	}
}

func TestAnalyzeNewNodeOrder(t *testing.T) {
	var added []string
	analyze(t,
		`<form><field/></form>`,
		`<form __diff_key__="0"><field __diff_key__="1"/><separator/><group><p>x</p></group></form>`,
		MovingCandidateKey(SignatureKey(nil)),
		OnNewNode(func(n *xmltree.Node) { added = append(added, n.Tag) }))
	if diff := cmp.Diff([]string{"separator", "group", "p"}, added); diff != "" {
		t.Errorf("new nodes (-want +got)\n%s", diff)
	}
}

func TestCanonical(t *testing.T) {
	n := AssignNodeKeys(xmltree.MustParse(`<a> x <b/> y <!-- c --> z <c/></a>`))
	want := []Run{{Text: "x"}, {ID: "1", Text: "y  z"}, {ID: "2"}}
	if diff := cmp.Diff(want, Canonical(OldLeaves(n))); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestPosition(t *testing.T) {
	for _, p := range []Position{Inside, Before, After, Replace, Attributes, Move} {
		got, ok := ParsePosition(p.String())
		if !ok || got != p {
			t.Errorf("%s: got %s %t", p, got, ok)
		}
	}
	if _, ok := ParsePosition("around"); ok {
		t.Error("parsed around")
	}
}
