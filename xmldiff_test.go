package xmldiff

import (
	"strings"
	"testing"

	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
	"github.com/signadot/xmldiff/xpatch"
)

type checkTest struct {
	name     string
	old, new string
	noPatch  bool
}

var checkTests = []checkTest{
	{
		name:    "same",
		old:     `<form><field name="a"/></form>`,
		new:     `<form __diff_key__="0"><field __diff_key__="1" name="a"/></form>`,
		noPatch: true,
	},
	{
		name: "edit",
		old:  `<form string="F"><group name="g"><field name="a"/><field name="b"/></group><field name="c"/></form>`,
		new:  `<form __diff_key__="0"><field __diff_key__="4" name="c"/><group __diff_key__="1" name="g"><field __diff_key__="3" name="b" invisible="1"/>note<field name="d"/></group></form>`,
	},
}

func TestCheck(t *testing.T) {
	for _, tt := range checkTests {
		t.Run(tt.name, func(t *testing.T) {
			old, err := Keys(tt.old)
			if err != nil {
				t.Fatal(err)
			}
			res, err := Check(old, xmltree.MustParse(tt.new))
			if err != nil {
				t.Fatal(err)
			}
			if !res.OK {
				t.Fatalf("patch %s\ndiff:\n%s", res.Patch, res.Diff)
			}
			if (res.Patch == "") != tt.noPatch {
				t.Errorf("got patch %q", res.Patch)
			}
			if res.Diff != "" {
				t.Errorf("got diff %s", res.Diff)
			}
			for _, n := range res.Got.Iter() {
				if libdiff.KeyOf(n) != "" {
					t.Errorf("key left on %s", n)
				}
			}
		})
	}
}

func TestKeys(t *testing.T) {
	n, err := Keys(`<form><group><field/></group></form>`)
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, e := range n.Iter() {
		keys = append(keys, libdiff.KeyOf(e))
	}
	if strings.Join(keys, ",") != "0,1,2" {
		t.Errorf("got keys %v", keys)
	}
	if _, err := Keys("<form x=1/>"); err == nil {
		t.Error("expected a parse error")
	}
}

func TestDiffXPath(t *testing.T) {
	old, err := Keys(`<form><field name="a"/></form>`)
	if err != nil {
		t.Fatal(err)
	}
	new := xmltree.MustParse(`<form __diff_key__="0"><field __diff_key__="1" name="a" string="A"/></form>`)
	p, err := DiffXPath(old, new, true, xpatch.IdentifyingAttrs())
	if err != nil {
		t.Fatal(err)
	}
	specs := xmltree.MustParse(p).Elements()
	if len(specs) != 1 || specs[0].Attr("expr") != "/form/field" {
		t.Errorf("got %s", p)
	}
	res, err := Diff(old, new)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 1 || res.Changes[0].ID != "1" {
		t.Errorf("got %d changes", len(res.Changes))
	}
}

func TestLineDiff(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"x\ny\n", "x\ny\n", " x\n y\n"},
		{"x\ny\n", "x\nz\n", " x\n-y\n+z\n"},
		{"x\n", "x\ny", " x\n+y\n"},
	}
	for _, tt := range tests {
		if got := LineDiff(tt.a, tt.b); got != tt.want {
			t.Errorf("LineDiff(%q, %q): got %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}
