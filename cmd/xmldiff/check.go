package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmldiff"
	"github.com/signadot/xmldiff/xmltree"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: check requires 2 args, got %v", cli.ErrUsage, args)
	}
	trees, err := readTrees(cc, args...)
	if err != nil {
		return err
	}
	opts, _, err := cfg.differOpts()
	if err != nil {
		return err
	}
	res, err := xmldiff.Check(trees[0], trees[1], opts...)
	if err != nil {
		return err
	}
	c := cfg.colors(cc.Out)
	if cfg.ShowPatch && res.Patch != "" {
		p, err := xmltree.Parse(res.Patch)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(cc.Out, c.patch(p.Indented(2))); err != nil {
			return err
		}
	}
	if res.OK {
		_, err := io.WriteString(cc.Out, "ok\n")
		return err
	}
	if _, err := io.WriteString(cc.Out, c.lineDiff(res.Diff)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
