package libdiff

import (
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"github.com/signadot/xmldiff/internal/xmltest"
	"github.com/signadot/xmldiff/xmltree"
)

func TestAssignNodeKeys(t *testing.T) {
	n := AssignNodeKeys(xmltree.MustParse(`<a><b/><!-- c --><d><e/></d></a>`))
	for i, tag := range []string{"a", "b", "d", "e"} {
		got := n.Iter()[i]
		if got.Tag != tag || KeyOf(got) != strconv.Itoa(i) {
			t.Errorf("%d: got <%s> key %q", i, got.Tag, KeyOf(got))
		}
	}
	if KeyOf(n.Children[1]) != "" {
		t.Error("comment got a key")
	}
}

func TestNodeKeysProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := xmltest.Tree(3).Draw(t, "tree")
		want := n.Clone()
		once := AssignNodeKeys(n.Clone())
		twice := AssignNodeKeys(once.Clone())
		if once.String() != twice.String() {
			t.Fatalf("assign is not idempotent:\n%s\n%s", once, twice)
		}
		seen := map[string]bool{}
		for _, e := range once.Iter() {
			k := KeyOf(e)
			if k == "" || seen[k] {
				t.Fatalf("bad key %q on %s", k, e)
			}
			seen[k] = true
		}
		if got := StripNodeKeys(once); got.String() != want.String() {
			t.Fatalf("strip: got %s want %s", got, want)
		}
	})
}
