package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/blwarren/simplifydocx"
	"github.com/blwarren/simplifydocx/options"
)

type MainConfig struct {
	V     bool `cli:"name=v aliases=verbose desc='log warnings and walked tags to stderr'"`
	Y     bool `cli:"name=y aliases=yaml desc='write trees and metadata as yaml'"`
	Color bool `cli:"name=color desc='color warnings and diffs'"`
	Quiet bool `cli:"name=q aliases=quiet desc='do not print conversion warnings'"`

	// Options accumulates -set and -options values in the order given.
	Options map[string]any

	Out      string
	CloseOut func() error

	// Err receives warnings and logs.
	Err io.Writer

	Main *cli.Command
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

func (cfg *MainConfig) setOpt(_ *cli.Context, a string) (any, error) {
	key, v, err := options.ParseAssignment(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: empty option name in %q", cli.ErrUsage, a)
	}
	cfg.Options[key] = v
	return 0, nil
}

func (cfg *MainConfig) optionsFileOpt(_ *cli.Context, a string) (any, error) {
	f, err := os.Open(a)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := options.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a, err)
	}
	for k, v := range m {
		cfg.Options[k] = v
	}
	return 0, nil
}

// simplifier opens path with the configured options and logging.
func (cfg *MainConfig) simplifier(path string) *simplifydocx.Simplifier {
	s := simplifydocx.Open(path).Options(cfg.Options)
	if cfg.V {
		s = s.Logger(newLogger(cfg.errOut(), slog.LevelDebug)).Trace()
	}
	return s
}

func (cfg *MainConfig) errOut() io.Writer {
	if cfg.Err == nil {
		return os.Stderr
	}
	return cfg.Err
}

// warn prints conversion warnings unless -q was given. With -v they are
// already logged.
func (cfg *MainConfig) warn(path string, warnings []simplifydocx.Warning) {
	if cfg.Quiet || cfg.V || len(warnings) == 0 {
		return
	}
	w := cfg.errOut()
	label := cfg.colorFunc(w, color.FgYellow)
	for _, warning := range warnings {
		fmt.Fprintf(w, "%s %s: %s\n", label("warning:"), path, warning)
	}
}

// colorFunc returns a formatter that colors when -color was given or w
// is a terminal.
func (cfg *MainConfig) colorFunc(w io.Writer, attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if cfg.useColor(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorSet := false
	for _, opt := range cfg.opts() {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) opts() []*cli.Opt {
	if cfg.Main == nil {
		return nil
	}
	return cfg.Main.Opts
}

type ConvertConfig struct {
	*MainConfig
	Indent string `cli:"name=indent desc='json indentation, empty for compact output'"`

	Convert *cli.Command
}

type TextConfig struct {
	*MainConfig

	Text *cli.Command
}

type FindConfig struct {
	*MainConfig
	Expr  string `cli:"name=e aliases=expr desc='boolean expression over TYPE, VALUE and properties'"`
	Type  string `cli:"name=t aliases=type desc='only visit nodes of this TYPE'"`
	Count bool   `cli:"name=c aliases=count desc='print the number of matches only'"`

	Find *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='print a json merge patch instead of a line diff'"`
	Text  bool `cli:"name=text desc='compare plain text instead of json'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Patch *cli.Command
}

type OptionsConfig struct {
	*MainConfig
	Group string `cli:"name=g aliases=group desc='only list options in this group'"`

	List *cli.Command
}

type MetaConfig struct {
	*MainConfig

	Meta *cli.Command
}
