package options

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	o := Defaults()

	trueByDefault := []string{
		"friendly-names", "flatten-hyperlink", "flatten-smartTag", "flatten-customXml",
		"flatten-simpleField", "merge-consecutive-text", "include-paragraph-indent",
		"include-paragraph-numbering", "ignore-joiners", "ignore-empty-table-description",
		"ignore-empty-table-caption", "ignore-empty-paragraphs", "ignore-empty-text",
		"remove-trailing-white-space", "remove-leading-white-space", "use-checkbox-default",
		"greedy-text-input", "simplify-dropdown", "simplify-textinput", "simplify-checkbox",
		"flatten-generic-field", "trim-dropdown-options", "symbol-as-text",
		"special-characters-as-text", "dumb-quotes", "dumb-hyphens", "dumb-spaces",
	}
	falseByDefault := []string{
		"flatten-inner-spaces", "ignore-left-to-right-mark", "ignore-right-to-left-mark",
		"checkbox-as-text", "dropdown-as-text", "textinput-as-text", "empty-as-text",
		"flatten-sdt", "include-paragraph-style", "include-cell-merge",
	}

	for _, key := range trueByDefault {
		if v, ok := o.Get(key); !ok || !v {
			t.Errorf("%s: got %v, %v; want true", key, v, ok)
		}
	}
	for _, key := range falseByDefault {
		if v, ok := o.Get(key); !ok || v {
			t.Errorf("%s: got %v, %v; want false", key, v, ok)
		}
	}
	if n := len(trueByDefault) + len(falseByDefault); n != len(Catalog()) {
		t.Errorf("catalog has %d entries, test covers %d", len(Catalog()), n)
	}

	if !o.FlattenHyperlink || o.CheckboxAsText {
		t.Error("struct fields disagree with Get")
	}
}

func TestFromMap(t *testing.T) {
	o, unknown, err := FromMap(map[string]any{
		"flatten-hyperlink": false,
		"checkbox-as-text":  "true",
		"friendly-name":     false,
		"not-an-option":     1,
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if o.FlattenHyperlink {
		t.Error("flatten-hyperlink should be false")
	}
	if !o.CheckboxAsText {
		t.Error("checkbox-as-text should be true")
	}
	if !o.FriendlyNames {
		t.Error("misspelled key must not change friendly-names")
	}
	if strings.Join(unknown, ",") != "friendly-name,not-an-option" {
		t.Errorf("unknown = %v", unknown)
	}

	if _, _, err := FromMap(map[string]any{"dumb-quotes": "maybe"}); !errors.Is(err, ErrBadValue) {
		t.Errorf("expected ErrBadValue, got %v", err)
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	base := Defaults()
	next, _, err := base.Apply(map[string]any{"dumb-quotes": false})
	if err != nil {
		t.Fatal(err)
	}
	if !base.DumbQuotes || next.DumbQuotes {
		t.Error("Apply should return a modified copy")
	}
}

func TestSetAndMap(t *testing.T) {
	o := Defaults()
	if !o.Set("flatten-sdt", true) || !o.FlattenSdt {
		t.Error("Set flatten-sdt failed")
	}
	if o.Set("bogus", true) {
		t.Error("Set should reject unknown keys")
	}
	m := o.Map()
	if !m["flatten-sdt"] || len(m) != len(Catalog()) {
		t.Errorf("Map() = %v", m)
	}
	if Known("bogus") || !Known("dumb-spaces") {
		t.Error("Known is wrong")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  any
	}{
		{"yaml", "flatten-hyperlink: false\ndumb-quotes: true\n", "flatten-hyperlink", false},
		{"json", `{"checkbox-as-text": true}`, "checkbox-as-text", true},
		{"empty", "", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Load(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if tt.key == "" {
				if len(m) != 0 {
					t.Errorf("expected empty map, got %v", m)
				}
				return
			}
			if m[tt.key] != tt.want {
				t.Errorf("%s = %v, want %v", tt.key, m[tt.key], tt.want)
			}
		})
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in   string
		key  string
		want any
	}{
		{"dumb-quotes=false", "dumb-quotes", false},
		{"flatten-sdt", "flatten-sdt", true},
		{"empty-as-text=true", "empty-as-text", true},
	}
	for _, tt := range tests {
		key, v, err := ParseAssignment(tt.in)
		if err != nil {
			t.Fatalf("ParseAssignment(%q): %v", tt.in, err)
		}
		if key != tt.key || v != tt.want {
			t.Errorf("ParseAssignment(%q) = %q, %v", tt.in, key, v)
		}
	}
}
