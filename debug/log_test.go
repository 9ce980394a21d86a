package debug

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/xmldiff/xmltree"
)

func TestRender(t *testing.T) {
	n := xmltree.MustParse(`<form><field name="a"/></form>`)
	var missing *xmltree.Node
	got := render([]any{n, missing, 3, "s"})
	want := []any{n.String(), "<nil>", 3, "s"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}
