package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func showConfig(cfg *ConfigConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Config.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: config takes no args, got %v", cli.ErrUsage, args)
	}
	f, err := cfg.diffConfig()
	if err != nil {
		return err
	}
	if _, err := f.Options(); err != nil {
		return err
	}
	d, err := f.YAML()
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}
