package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmldiff/xmltree"
)

func xmldiffMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Indent < 0 {
		return fmt.Errorf("%w: -indent must not be negative", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readTree parses the xml file at path, "-" being the standard input.
func readTree(cc *cli.Context, path string) (*xmltree.Node, error) {
	var r io.Reader
	if path == "-" {
		r = cc.In
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	n, err := xmltree.ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return n, nil
}

func readTrees(cc *cli.Context, paths ...string) ([]*xmltree.Node, error) {
	res := make([]*xmltree.Node, len(paths))
	for i, p := range paths {
		n, err := readTree(cc, p)
		if err != nil {
			return nil, err
		}
		res[i] = n
	}
	return res, nil
}
