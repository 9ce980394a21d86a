package diffconf

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/xmldiff/debug"
	"github.com/signadot/xmldiff/xmltree"
)

// env is what an expression sees of an element.
type env struct {
	Tag   string            `expr:"tag"`
	Attrs map[string]string `expr:"attrs"`
	Text  string            `expr:"text"`
	Depth int               `expr:"depth"`
	Name  string            `expr:"name"`
}

func nodeEnv(n *xmltree.Node, attr string) env {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return env{
		Tag:   n.Tag,
		Attrs: n.AttrMap(),
		Text:  n.Text,
		Depth: depth,
		Name:  attr,
	}
}

func compile(which, src string, opts ...expr.Option) (*vm.Program, error) {
	opts = append([]expr.Option{expr.Env(env{})}, opts...)
	p, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: expr.%s: %w", ErrConfig, which, err)
	}
	return p, nil
}

// boolPredicate compiles src into a predicate on elements. Evaluation
// errors count as false.
func boolPredicate(which, src string) (func(n *xmltree.Node, attr string) bool, error) {
	p, err := compile(which, src, expr.AsBool())
	if err != nil {
		return nil, err
	}
	return func(n *xmltree.Node, attr string) bool {
		out, err := vm.Run(p, nodeEnv(n, attr))
		if err != nil {
			if debug.Analyze() {
				debug.Logf("diffconf: expr.%s on %s: %v\n", which, n.ShallowClone(), err)
			}
			return false
		}
		b, _ := out.(bool)
		return b
	}, nil
}

func stringFunc(which, src string) (func(n *xmltree.Node) string, error) {
	p, err := compile(which, src, expr.AsKind(reflect.String))
	if err != nil {
		return nil, err
	}
	return func(n *xmltree.Node) string {
		out, err := vm.Run(p, nodeEnv(n, ""))
		if err != nil {
			if debug.Analyze() {
				debug.Logf("diffconf: expr.%s on %s: %v\n", which, n.ShallowClone(), err)
			}
			return ""
		}
		s, _ := out.(string)
		return s
	}, nil
}
