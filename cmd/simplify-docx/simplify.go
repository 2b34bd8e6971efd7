package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/blwarren/simplifydocx/simple"
)

func simplifyMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.V && cfg.Quiet {
		return fmt.Errorf("%w: -v and -q are exclusive", cli.ErrUsage)
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

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: json requires one document", cli.ErrUsage)
	}
	v, warnings, err := cfg.simplifier(args[0]).Value()
	if err != nil {
		return fmt.Errorf("error converting %s: %w", args[0], err)
	}
	cfg.warn(args[0], warnings)
	return cfg.writeTree(cc.Out, v, cfg.Indent)
}

// writeTree encodes v as yaml with -y, otherwise as json.
func (cfg *MainConfig) writeTree(w io.Writer, v *simple.Value, indent string) error {
	var (
		out []byte
		err error
	)
	if cfg.Y {
		out, err = simple.YAML(v)
	} else {
		out, err = simple.JSON(v, indent)
	}
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func text(cfg *TextConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Text.Parse(cc, args)
	if err != nil {
		cfg.Text.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: text requires at least one document", cli.ErrUsage)
	}
	for _, arg := range args {
		s, warnings, err := cfg.simplifier(arg).Text()
		if err != nil {
			return fmt.Errorf("error converting %s: %w", arg, err)
		}
		cfg.warn(arg, warnings)
		if _, err := io.WriteString(cc.Out, s); err != nil {
			return err
		}
	}
	return nil
}

func meta(cfg *MetaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Meta.Parse(cc, args)
	if err != nil {
		cfg.Meta.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: meta requires one document", cli.ErrUsage)
	}
	md, err := cfg.simplifier(args[0]).Metadata()
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}
	var out []byte
	if cfg.Y {
		out, err = yaml.Marshal(md)
	} else {
		out, err = json.MarshalIndent(md, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return fmt.Errorf("error encoding metadata: %w", err)
	}
	_, err = cc.Out.Write(out)
	return err
}
