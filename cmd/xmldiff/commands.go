package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "set",
			Description: "override a configuration field, value in yaml",
			Type:        cli.NamedFuncOpt(cfg.setOpt, "(field=value)"),
		},
		&cli.Opt{
			Name:        "patch",
			Description: "json patch operations (yaml) applied to the configuration",
			Type:        cli.NamedFuncOpt(cfg.patchOpt, "(ops)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "xmldiff").
		WithSynopsis("xmldiff [opts] command [opts]").
		WithDescription("xmldiff computes xpath patches between versions of a keyed xml tree.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xmldiffMain(cfg, cc, args)
		}).
		WithSubs(
			KeysCommand(cfg),
			DiffCommand(cfg),
			XPathCommand(cfg),
			ApplyCommand(cfg),
			CheckCommand(cfg),
			ConfigCommand(cfg))
}

func KeysCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("keys").
		WithAliases("k").
		WithSynopsis("keys [-strip] [file]").
		WithDescription("stamp (or strip) node keys on every element").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
	cfg.Keys = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff <old> <new>").
		WithDescription("show the change records between a keyed tree and an edited copy").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func XPathCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &XPathConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("xpath").
		WithAliases("x", "xp").
		WithSynopsis("xpath [-meta] <old> <new>").
		WithDescription("compute the xpath patch turning old into new").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xpathPatch(cfg, cc, args)
		})
	cfg.XPath = cmd
	return cmd
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a", "ap").
		WithSynopsis("apply <doc> <patch>").
		WithDescription("apply an xpath patch to a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("c").
		WithSynopsis("check [-p] <old> <new>").
		WithDescription("check that the patch between old and new turns old into new").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

func ConfigCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConfigConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("config").
		WithAliases("conf").
		WithSynopsis("config").
		WithDescription("show the effective differ configuration").
		WithRun(func(cc *cli.Context, args []string) error {
			return showConfig(cfg, cc, args)
		})
	cfg.Config = cmd
	return cmd
}
