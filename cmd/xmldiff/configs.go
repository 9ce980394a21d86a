package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/signadot/xmldiff/diffconf"
	"github.com/signadot/xmldiff/xmltree"
	"github.com/signadot/xmldiff/xpatch"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config aliases=cfg desc='differ configuration file (yaml)'"`
	Color      bool   `cli:"name=color desc='output with color'"`
	Indent     int    `cli:"name=indent desc='indent output xml by this many spaces'"`
	Flat       bool   `cli:"name=flat desc='output specs without grouping them per change'"`

	Overrides []diffconf.Override

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) setOpt(_ *cli.Context, a string) (any, error) {
	field, value, ok := strings.Cut(a, "=")
	if !ok {
		return nil, fmt.Errorf("%w: -set expects field=value, got %q", cli.ErrUsage, a)
	}
	o, err := diffconf.Set(field, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Overrides = append(cfg.Overrides, o)
	return a, nil
}

func (cfg *MainConfig) patchOpt(_ *cli.Context, a string) (any, error) {
	o, err := diffconf.Patch(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Overrides = append(cfg.Overrides, o)
	return a, nil
}

// diffConfig loads the configuration file, if any, with the command line
// overrides.
func (cfg *MainConfig) diffConfig() (*diffconf.File, error) {
	if cfg.ConfigFile == "" {
		return diffconf.Parse(nil, cfg.Overrides...)
	}
	return diffconf.Load(cfg.ConfigFile, cfg.Overrides...)
}

func (cfg *MainConfig) differOpts(extra ...xpatch.Option) ([]xpatch.Option, bool, error) {
	f, err := cfg.diffConfig()
	if err != nil {
		return nil, false, err
	}
	opts, err := f.Options()
	if err != nil {
		return nil, false, err
	}
	return append(opts, extra...), cfg.Flat || f.Flat, nil
}

func (cfg *MainConfig) optSet(name string) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != name {
			continue
		}
		return opt.Value != nil
	}
	return false
}

func (cfg *MainConfig) colors(w io.Writer) *colors {
	if cfg.Color {
		return newColors()
	}
	if cfg.optSet("color") {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return newColors()
	}
	return nil
}

func (cfg *MainConfig) encode(n *xmltree.Node) string {
	if cfg.Indent > 0 {
		return n.Indented(cfg.Indent)
	}
	return n.String() + "\n"
}

type KeysConfig struct {
	*MainConfig
	Strip bool `cli:"name=strip desc='remove node keys instead'"`

	Keys *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type XPathConfig struct {
	*MainConfig
	Meta bool `cli:"name=meta desc='add meta-* attributes of the targets to specs'"`

	XPath *cli.Command
}

type ApplyConfig struct {
	*MainConfig

	Apply *cli.Command
}

type CheckConfig struct {
	*MainConfig
	ShowPatch bool `cli:"name=p desc='show the patch'"`

	Check *cli.Command
}

type ConfigConfig struct {
	*MainConfig

	Config *cli.Command
}
