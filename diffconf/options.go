package diffconf

import (
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
	"github.com/signadot/xmldiff/xpatch"
)

// Options compiles the configuration into differ options.
func (f *File) Options() ([]xpatch.Option, error) {
	var opts []xpatch.Option

	ignore, err := f.ignore()
	if err != nil {
		return nil, err
	}
	if ignore != nil {
		opts = append(opts, xpatch.Analyze(libdiff.IgnoreAttributes(ignore)))
	}

	subtree, err := f.subtree()
	if err != nil {
		return nil, err
	}
	if subtree != nil {
		opts = append(opts, xpatch.IsSubtree(subtree))
	}

	switch {
	case f.CandidateKey == CandidateSignature:
		opts = append(opts, xpatch.Analyze(libdiff.MovingCandidateKey(libdiff.SignatureKey(subtree))))
	case f.Expr.Candidate != "":
		key, err := stringFunc("candidate", f.Expr.Candidate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, xpatch.Analyze(libdiff.MovingCandidateKey(func(n *xmltree.Node) string {
			if k := key(n); k != "" {
				return n.Tag + "|" + k
			}
			return ""
		})))
	}

	if len(f.IdentifyingAttrs) != 0 {
		opts = append(opts, xpatch.IdentifyingAttrs(f.IdentifyingAttrs...))
	}
	if f.XPathWithMeta {
		opts = append(opts, xpatch.XPathWithMeta(true))
	}
	return opts, nil
}

func (f *File) ignore() (func(*xmltree.Node, string) bool, error) {
	var pred func(*xmltree.Node, string) bool
	if f.Expr.Ignore != "" {
		p, err := boolPredicate("ignore", f.Expr.Ignore)
		if err != nil {
			return nil, err
		}
		pred = p
	}
	if len(f.IgnoreAttributes) == 0 && pred == nil {
		return nil, nil
	}
	names := slices.Clone(f.IgnoreAttributes)
	return func(n *xmltree.Node, attr string) bool {
		if slices.Contains(names, attr) {
			return true
		}
		return pred != nil && pred(n, attr)
	}, nil
}

func (f *File) subtree() (func(*xmltree.Node) bool, error) {
	var pred func(*xmltree.Node, string) bool
	if f.Expr.Subtree != "" {
		p, err := boolPredicate("subtree", f.Expr.Subtree)
		if err != nil {
			return nil, err
		}
		pred = p
	}
	if len(f.SubtreeTags) == 0 && pred == nil {
		return nil, nil
	}
	tags := libdiff.SubtreeTags(f.SubtreeTags...)
	return func(n *xmltree.Node) bool {
		if tags(n) {
			return true
		}
		return pred != nil && n.Kind == xmltree.ElementKind && pred(n, "")
	}, nil
}

// YAML returns the configuration as YAML.
func (f *File) YAML() ([]byte, error) {
	return yaml.Marshal(f)
}
