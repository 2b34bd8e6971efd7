package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/blwarren/simplifydocx"
	"github.com/blwarren/simplifydocx/diag"
	"github.com/blwarren/simplifydocx/options"
	"github.com/blwarren/simplifydocx/simple"
)

func sampleTree() *simple.Value {
	return simple.New("document", []*simple.Value{
		simple.New("paragraph", []*simple.Value{
			simple.Text("text", "Total: "),
			simple.New("checkbox", true),
		}),
		simple.New("paragraph", []*simple.Value{
			simple.New("hyperlink", []*simple.Value{simple.Text("text", "see here")}).Set("anchor", "top"),
		}),
	})
}

func TestFindNodes(t *testing.T) {
	tests := []struct {
		name  string
		typ   string
		expr  string
		types []string
	}{
		{"by type", "text", "", []string{"text", "text"}},
		{"by expression", "", `TYPE == "checkbox" && VALUE`, []string{"checkbox"}},
		{"property", "", `anchor == "top"`, []string{"hyperlink"}},
		{"type and expression", "text", `VALUE startsWith "see"`, []string{"text"}},
		{"no match", "table", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findNodes(sampleTree(), tt.typ, tt.expr)
			if err != nil {
				t.Fatalf("findNodes failed: %v", err)
			}
			var types []string
			for _, v := range got {
				types = append(types, v.Type)
			}
			if diff := cmp.Diff(tt.types, types); diff != "" {
				t.Errorf("types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindNodes_BadExpression(t *testing.T) {
	if _, err := findNodes(sampleTree(), "", "TYPE =="); err == nil {
		t.Error("expected a compile error")
	}
}

func TestLineDiff(t *testing.T) {
	diffs := lineDiff("a\nb\nc\n", "a\nB\nc\n")

	var buf bytes.Buffer
	writeLineDiff(&buf, diffs,
		func(a ...any) string { return "<" + a[0].(string) + ">" },
		func(a ...any) string { return "[" + a[0].(string) + "]" })

	want := " a\n<-b>\n[+B]\n c\n"
	if buf.String() != want {
		t.Errorf("diff output = %q, want %q", buf.String(), want)
	}

	for _, d := range lineDiff("same\n", "same\n") {
		if d.Type != diffmatchpatch.DiffEqual {
			t.Errorf("identical inputs produced %v", d.Type)
		}
	}
}

func TestApplyPatch(t *testing.T) {
	doc := []byte(`{"TYPE":"document","VALUE":[{"TYPE":"text","VALUE":"old"}]}`)
	p := []byte(`[{"op":"replace","path":"/VALUE/0/VALUE","value":"new"}]`)

	out, err := applyPatch(doc, p)
	if err != nil {
		t.Fatalf("applyPatch failed: %v", err)
	}
	if !strings.Contains(string(out), `"new"`) || strings.Contains(string(out), `"old"`) {
		t.Errorf("patched = %s", out)
	}

	if _, err := applyPatch(doc, []byte(`{not json`)); err == nil {
		t.Error("expected an error for a malformed patch")
	}
}

func TestSetOpt(t *testing.T) {
	cfg := &MainConfig{Options: map[string]any{}}
	for _, a := range []string{"friendly-names=false", "dumb-quotes", "flatten-sdt=true", "label=draft"} {
		if _, err := cfg.setOpt(nil, a); err != nil {
			t.Fatalf("setOpt(%q) failed: %v", a, err)
		}
	}
	want := map[string]any{"friendly-names": false, "dumb-quotes": true, "flatten-sdt": true, "label": "draft"}
	if diff := cmp.Diff(want, cfg.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}

	if _, err := cfg.setOpt(nil, "=true"); err == nil {
		t.Error("expected an error for an empty key")
	}
}

func TestOptionsFileOpt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	if err := os.WriteFile(path, []byte("friendly-names: false\nsymbol-as-text: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{Options: map[string]any{"dumb-quotes": false}}
	if _, err := cfg.optionsFileOpt(nil, path); err != nil {
		t.Fatalf("optionsFileOpt failed: %v", err)
	}

	opts, unknown, err := options.Defaults().Apply(cfg.Options)
	if err != nil || len(unknown) != 0 {
		t.Fatalf("Apply = %v, %v", unknown, err)
	}
	if opts.FriendlyNames || opts.SymbolAsText || opts.DumbQuotes {
		t.Errorf("file options not applied: %+v", opts)
	}

	if _, err := cfg.optionsFileOpt(nil, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestWriteOptionsTable(t *testing.T) {
	opts := options.Defaults()
	opts.FlattenSdt = true

	var buf bytes.Buffer
	if err := writeOptionsTable(&buf, opts, "flattening"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# flattening\n") {
		t.Errorf("missing group header:\n%s", out)
	}
	if !strings.Contains(out, "true*") {
		t.Errorf("changed option should be starred:\n%s", out)
	}
	if strings.Contains(out, "friendly-names") {
		t.Errorf("other groups should be filtered:\n%s", out)
	}
}

func TestWriteOptionsYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOptionsYAML(&buf, options.Defaults(), "general"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "friendly-names: true\n" {
		t.Errorf("yaml = %q", got)
	}
}

func TestWriteTree(t *testing.T) {
	var buf bytes.Buffer
	cfg := &MainConfig{}
	if err := cfg.writeTree(&buf, simple.Text("text", "a<b"), ""); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != `{"TYPE":"text","VALUE":"a<b"}`+"\n" {
		t.Errorf("json = %q", got)
	}

	buf.Reset()
	cfg.Y = true
	if err := cfg.writeTree(&buf, simple.Text("text", "hi"), ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "VALUE: hi") {
		t.Errorf("yaml = %q", buf.String())
	}
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	cfg := &MainConfig{Err: &buf}
	warnings := []simplifydocx.Warning{{Kind: diag.UnexpectedTag, Message: "unexpected", Tag: "w:foo"}}

	cfg.warn("a.docx", warnings)
	if out := buf.String(); !strings.HasPrefix(out, "warning: a.docx: ") || !strings.Contains(out, "w:foo") {
		t.Errorf("warn output = %q", out)
	}

	buf.Reset()
	cfg.Quiet = true
	cfg.warn("a.docx", warnings)
	if buf.Len() != 0 {
		t.Errorf("quiet warn wrote %q", buf.String())
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, slog.LevelDebug)
	log.Info("converted", "file", "a.docx")
	log.Debug("walked", "tag", "w:p")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if strings.Contains(lines[0], "time=") || strings.Contains(lines[0], "level=") {
		t.Errorf("info line should carry neither time nor level: %q", lines[0])
	}
	if !strings.Contains(lines[1], "level=DEBUG") {
		t.Errorf("debug line should carry its level: %q", lines[1])
	}
}
