package diffconf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const full = `
ignoreAttributes: [data-oe-id]
subtreeTags: [form, list]
identifyingAttrs: [name, id]
candidateKey: signature
xpathWithMeta: true
flat: true
expr:
  ignore: 'name startsWith "data-"'
  subtree: 'tag == "page"'
`

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *File
	}{
		{"empty", "", &File{}},
		{"comment only", "# nothing\n", &File{}},
		{
			"full",
			full,
			&File{
				IgnoreAttributes: []string{"data-oe-id"},
				SubtreeTags:      []string{"form", "list"},
				IdentifyingAttrs: []string{"name", "id"},
				CandidateKey:     CandidateSignature,
				XPathWithMeta:    true,
				Flat:             true,
				Expr: Exprs{
					Ignore:  `name startsWith "data-"`,
					Subtree: `tag == "page"`,
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("(-want +got)\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown field", "flatten: true"},
		{"bad type", "flat: [1]"},
		{"bad candidate", "candidateKey: fuzzy"},
		{"exclusive candidates", "candidateKey: signature\nexpr:\n  candidate: attrs.name"},
		{"bad yaml", "a: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if !errors.Is(err, ErrConfig) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestOverrides(t *testing.T) {
	set, err := Set("flat", "true")
	if err != nil {
		t.Fatal(err)
	}
	merge, err := Merge("subtreeTags: [page]\nexpr:\n  ignore: 'false'")
	if err != nil {
		t.Fatal(err)
	}
	patch, err := Patch("- {op: add, path: /identifyingAttrs/1, value: string}\n- {op: replace, path: /candidateKey, value: none}")
	if err != nil {
		t.Fatal(err)
	}
	base := "identifyingAttrs: [name]\ncandidateKey: signature\nsubtreeTags: [form]\n"
	got, err := Parse([]byte(base), set, merge, patch)
	if err != nil {
		t.Fatal(err)
	}
	want := &File{
		IdentifyingAttrs: []string{"name", "string"},
		CandidateKey:     CandidateNone,
		SubtreeTags:      []string{"page"},
		Flat:             true,
		Expr:             Exprs{Ignore: "false"},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestOverrideErrors(t *testing.T) {
	if _, err := Patch("op: add"); !errors.Is(err, ErrConfig) {
		t.Errorf("patch of a mapping: got %v", err)
	}
	unknown, err := Set("nothing", "1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(nil, unknown); !errors.Is(err, ErrConfig) {
		t.Errorf("set of an unknown field: got %v", err)
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "diff.yaml")
	if err := os.WriteFile(p, []byte(full), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Flat || f.CandidateKey != CandidateSignature {
		t.Errorf("got %+v", f)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrConfig) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestYAML(t *testing.T) {
	f, err := Parse([]byte(full))
	if err != nil {
		t.Fatal(err)
	}
	d, err := f.YAML()
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(d)
	if err != nil {
		t.Fatalf("%v\n%s", err, d)
	}
	if diff := cmp.Diff(f, back, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}
