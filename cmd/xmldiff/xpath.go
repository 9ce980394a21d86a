package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmldiff/xpatch"
)

func xpathPatch(cfg *XPathConfig, cc *cli.Context, args []string) error {
	args, err := cfg.XPath.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: xpath requires 2 args, got %v", cli.ErrUsage, args)
	}
	trees, err := readTrees(cc, args...)
	if err != nil {
		return err
	}
	var extra []xpatch.Option
	if cfg.Meta {
		extra = append(extra, xpatch.XPathWithMeta(true))
	}
	opts, flat, err := cfg.differOpts(extra...)
	if err != nil {
		return err
	}
	p, err := xpatch.NewDiffer(opts...).Patch(trees[0], trees[1], flat)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	_, err = io.WriteString(cc.Out, cfg.colors(cc.Out).patch(cfg.encode(p)))
	return err
}
