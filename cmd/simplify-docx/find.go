package main

import (
	"fmt"
	"io"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/blwarren/simplifydocx/simple"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		cfg.Find.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: find requires one document", cli.ErrUsage)
	}
	if cfg.Expr == "" && cfg.Type == "" {
		return fmt.Errorf("%w: find requires -e or -t", cli.ErrUsage)
	}
	v, warnings, err := cfg.simplifier(args[0]).Value()
	if err != nil {
		return fmt.Errorf("error converting %s: %w", args[0], err)
	}
	cfg.warn(args[0], warnings)

	matches, err := findNodes(v, cfg.Type, cfg.Expr)
	if err != nil {
		return err
	}
	if cfg.Count {
		_, err := fmt.Fprintln(cc.Out, len(matches))
		return err
	}
	for i, m := range matches {
		if cfg.Y && i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		if err := cfg.writeTree(cc.Out, m, ""); err != nil {
			return err
		}
	}
	return nil
}

// findNodes returns the nodes under root, in document order, whose TYPE
// is typ (any type when empty) and for which src evaluates to true. An
// empty src matches every node.
func findNodes(root *simple.Value, typ, src string) ([]*simple.Value, error) {
	var program *vm.Program
	if src != "" {
		var err error
		program, err = expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid expression: %w", cli.ErrUsage, err)
		}
	}

	var matches []*simple.Value
	var opts []simple.WalkOption
	if typ != "" {
		opts = append(opts, simple.OfType(typ))
	}
	err := simple.Walk(root, func(v, _ *simple.Value, _ int) error {
		if program != nil {
			res, err := expr.Run(program, v.Env())
			if err != nil {
				return fmt.Errorf("evaluating %q on %s: %w", src, v.Type, err)
			}
			if ok, _ := res.(bool); !ok {
				return nil
			}
		}
		matches = append(matches, v)
		return nil
	}, opts...)
	return matches, err
}
