package debug

import (
	"fmt"
	"os"

	"github.com/signadot/xmldiff/xmltree"
)

// Logf writes to stderr, rendering *xmltree.Node arguments as XML.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, render(args)...)
}

func render(args []any) []any {
	for i, a := range args {
		if x, ok := a.(*xmltree.Node); ok {
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			args[i] = x.String()
		}
	}
	return args
}
