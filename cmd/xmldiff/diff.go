package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmldiff/libdiff"
	"github.com/signadot/xmldiff/xpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	trees, err := readTrees(cc, args...)
	if err != nil {
		return err
	}
	opts, _, err := cfg.differOpts()
	if err != nil {
		return err
	}
	res, err := xpatch.NewDiffer(opts...).Diff(trees[0], trees[1])
	if err != nil {
		return err
	}
	if len(res.Changes) == 0 {
		return nil
	}
	c := cfg.colors(cc.Out)
	for _, ch := range res.Changes {
		if _, err := io.WriteString(cc.Out, describe(c, res, ch)); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}

func describe(c *colors, res *libdiff.Result, ch *libdiff.Change) string {
	var b strings.Builder
	id := ch.ID
	if c != nil {
		id = c.id("%s", id)
	}
	fmt.Fprintf(&b, "%s <%s>\n", id, res.OriginalNodes[ch.ID].Tag)
	for _, a := range ch.Attributes {
		if a.Removed {
			fmt.Fprintf(&b, "  @%s removed\n", a.Name)
			continue
		}
		fmt.Fprintf(&b, "  @%s=%q\n", a.Name, a.Value)
	}
	if !ch.LeavesChanged {
		return b.String()
	}
	fmt.Fprintf(&b, "  children:")
	for _, r := range libdiff.Canonical(ch.NewLeaves) {
		if r.ID != "" {
			fmt.Fprintf(&b, " %s", r.ID)
		}
		if r.Text != "" {
			fmt.Fprintf(&b, " %q", r.Text)
		}
	}
	b.WriteString("\n")
	if len(ch.RemovedNodes) != 0 {
		fmt.Fprintf(&b, "  removed: %s\n", strings.Join(ch.RemovedNodes, " "))
	}
	for _, cm := range ch.CandidatesMove {
		fmt.Fprintf(&b, "  candidate: %q\n", cm.Key)
	}
	return b.String()
}
