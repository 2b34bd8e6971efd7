package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two documents", cli.ErrUsage)
	}
	if cfg.Merge && cfg.Text {
		return fmt.Errorf("%w: -merge and -text are exclusive", cli.ErrUsage)
	}

	var sides [2][]byte
	for i, arg := range args {
		s := cfg.simplifier(arg)
		if cfg.Text {
			txt, warnings, err := s.Text()
			if err != nil {
				return fmt.Errorf("error converting %s: %w", arg, err)
			}
			cfg.warn(arg, warnings)
			sides[i] = []byte(txt)
			continue
		}
		indent := "  "
		if cfg.Merge {
			indent = ""
		}
		out, warnings, err := s.JSON(indent)
		if err != nil {
			return fmt.Errorf("error converting %s: %w", arg, err)
		}
		cfg.warn(arg, warnings)
		sides[i] = append(out, '\n')
	}

	if bytes.Equal(sides[0], sides[1]) {
		return nil
	}
	if cfg.Merge {
		mp, err := jsonpatch.CreateMergePatch(sides[0], sides[1])
		if err != nil {
			return fmt.Errorf("error computing merge patch: %w", err)
		}
		if _, err := fmt.Fprintf(cc.Out, "%s\n", mp); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}

	diffs := lineDiff(string(sides[0]), string(sides[1]))
	writeLineDiff(cc.Out, diffs,
		cfg.colorFunc(cc.Out, color.FgRed),
		cfg.colorFunc(cc.Out, color.FgGreen))
	return cli.ExitCodeErr(1)
}

// lineDiff compares a and b line by line.
func lineDiff(a, b string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// writeLineDiff prints diffs with "-", "+" or " " before every line.
func writeLineDiff(w io.Writer, diffs []diffmatchpatch.Diff, del, ins func(a ...any) string) {
	for _, d := range diffs {
		prefix, paint := " ", fmt.Sprint
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, paint = "-", del
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+", ins
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, paint(prefix+strings.TrimSuffix(line, "\n")), "\n")
		}
	}
}

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires a document and a patch file", cli.ErrUsage)
	}
	doc, warnings, err := cfg.simplifier(args[0]).JSON("")
	if err != nil {
		return fmt.Errorf("error converting %s: %w", args[0], err)
	}
	cfg.warn(args[0], warnings)

	p, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	out, err := applyPatch(doc, p)
	if err != nil {
		return fmt.Errorf("error patching %s with %s: %w", args[0], args[1], err)
	}
	if cfg.Y {
		out, err = yaml.JSONToYAML(out)
		if err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	} else {
		var buf bytes.Buffer
		if err := json.Indent(&buf, out, "", "  "); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		buf.WriteByte('\n')
		out = buf.Bytes()
	}
	_, err = cc.Out.Write(out)
	return err
}

// applyPatch applies a JSON Patch document to an encoded tree.
func applyPatch(doc, p []byte) ([]byte, error) {
	ops, err := jsonpatch.DecodePatch(p)
	if err != nil {
		return nil, err
	}
	return ops.Apply(doc)
}
