package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmldiff/xpatch"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: apply requires 2 args, got %v", cli.ErrUsage, args)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: only one of doc and patch may be stdin", cli.ErrUsage)
	}
	trees, err := readTrees(cc, args...)
	if err != nil {
		return err
	}
	res, err := xpatch.Apply(trees[0], trees[1])
	if err != nil {
		return fmt.Errorf("error applying %s: %w", args[1], err)
	}
	_, err = io.WriteString(cc.Out, cfg.encode(res))
	return err
}
