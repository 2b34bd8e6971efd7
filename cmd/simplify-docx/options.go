package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/blwarren/simplifydocx/options"
)

func listOptions(cfg *OptionsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: options takes no arguments", cli.ErrUsage)
	}
	opts, unknown, err := options.Defaults().Apply(cfg.Options)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, key := range unknown {
		fmt.Fprintf(cfg.errOut(), "%s unknown option %q\n", cfg.colorFunc(cfg.errOut(), color.FgYellow)("warning:"), key)
	}
	if cfg.Y {
		return writeOptionsYAML(cc.Out, opts, cfg.Group)
	}
	return writeOptionsTable(cc.Out, opts, cfg.Group)
}

// writeOptionsTable prints one row per option: key, effective value,
// a star when the value differs from the default, and the description.
func writeOptionsTable(w io.Writer, opts options.Options, group string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	last := ""
	for _, e := range options.Catalog() {
		if group != "" && e.Group != group {
			continue
		}
		if e.Group != last {
			if last != "" {
				fmt.Fprintln(tw)
			}
			fmt.Fprintf(tw, "# %s\n", e.Group)
			last = e.Group
		}
		v, _ := opts.Get(e.Key)
		mark := ""
		if v != e.Default {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%t%s\t%s\n", e.Key, v, mark, e.Description)
	}
	return tw.Flush()
}

func writeOptionsYAML(w io.Writer, opts options.Options, group string) error {
	var ms yaml.MapSlice
	for _, e := range options.Catalog() {
		if group != "" && e.Group != group {
			continue
		}
		v, _ := opts.Get(e.Key)
		ms = append(ms, yaml.MapItem{Key: e.Key, Value: v})
	}
	out, err := yaml.Marshal(ms)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
