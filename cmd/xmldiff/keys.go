package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmldiff/libdiff"
)

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: keys takes at most one file, got %v", cli.ErrUsage, args)
	}
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	n, err := readTree(cc, path)
	if err != nil {
		return err
	}
	if cfg.Strip {
		libdiff.StripNodeKeys(n)
	} else {
		libdiff.AssignNodeKeys(n)
	}
	_, err = io.WriteString(cc.Out, cfg.encode(n))
	return err
}
