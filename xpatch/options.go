package xpatch

import (
	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xmltree"
)

// DefaultIdentifyingAttrs are the attributes which make short expressions
// such as //field[@name='x'].
var DefaultIdentifyingAttrs = []string{"name", "id"}

type Config struct {
	Analyze []libdiff.Option

	// IsSubtree reports subtree boundaries, from which expressions are
	// anchored.
	IsSubtree func(n *xmltree.Node) bool

	// XPathWithMeta adds meta-* attributes copied from the target to
	// each <xpath> spec.
	XPathWithMeta bool

	IdentifyingAttrs []string
}

type Option func(*Config)

// Analyze passes options to the underlying libdiff.Analyzer.
func Analyze(opts ...libdiff.Option) Option {
	return func(c *Config) { c.Analyze = append(c.Analyze, opts...) }
}

// IsSubtree sets the subtree boundaries of both the analysis and the
// expression builder.
func IsSubtree(f func(n *xmltree.Node) bool) Option {
	return func(c *Config) {
		c.IsSubtree = f
		c.Analyze = append(c.Analyze, libdiff.IsSubtree(f))
	}
}

func XPathWithMeta(v bool) Option {
	return func(c *Config) { c.XPathWithMeta = v }
}

func IdentifyingAttrs(names ...string) Option {
	return func(c *Config) { c.IdentifyingAttrs = names }
}
