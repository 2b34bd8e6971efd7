// Package options defines the switches that shape a simplified document.
//
// Options is a plain value: a conversion copies it and never mutates the
// caller's copy. Every option has a kebab-case key (the form used in
// option files and on the command line), a default, and a description;
// Catalog lists them.
package options

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrBadValue is returned when an option is given a value that is not a
// boolean.
var ErrBadValue = errors.New("options: value is not a boolean")

// Options holds every switch. Field names mirror the keys.
type Options struct {
	FriendlyNames bool

	FlattenHyperlink   bool
	FlattenSmartTag    bool
	FlattenCustomXml   bool
	FlattenSimpleField bool
	FlattenSdt         bool
	MergeConsecutive   bool
	FlattenInnerSpaces bool

	IncludeParagraphIndent    bool
	IncludeParagraphNumbering bool
	IncludeParagraphStyle     bool
	IncludeCellMerge          bool

	IgnoreJoiners               bool
	IgnoreLeftToRightMark       bool
	IgnoreRightToLeftMark       bool
	IgnoreEmptyTableDescription bool
	IgnoreEmptyTableCaption     bool
	IgnoreEmptyParagraphs       bool
	IgnoreEmptyText             bool
	RemoveTrailingWhiteSpace    bool
	RemoveLeadingWhiteSpace     bool

	UseCheckboxDefault  bool
	GreedyTextInput     bool
	CheckboxAsText      bool
	DropdownAsText      bool
	TextInputAsText     bool
	SimplifyDropdown    bool
	SimplifyTextInput   bool
	SimplifyCheckbox    bool
	FlattenGenericField bool
	TrimDropdownOptions bool

	EmptyAsText             bool
	SymbolAsText            bool
	SpecialCharactersAsText bool
	DumbQuotes              bool
	DumbHyphens             bool
	DumbSpaces              bool
}

// Entry documents one option.
type Entry struct {
	Key         string
	Default     bool
	Description string
	Group       string

	field func(*Options) *bool
}

var catalog = []Entry{
	{"friendly-names", true, "relabel internal type names with readable ones", "general",
		func(o *Options) *bool { return &o.FriendlyNames }},

	{"flatten-hyperlink", true, "splice hyperlink contents into the paragraph instead of wrapping them", "flattening",
		func(o *Options) *bool { return &o.FlattenHyperlink }},
	{"flatten-smartTag", true, "splice smart tag contents into the paragraph", "flattening",
		func(o *Options) *bool { return &o.FlattenSmartTag }},
	{"flatten-customXml", true, "splice run-level custom XML contents into the paragraph", "flattening",
		func(o *Options) *bool { return &o.FlattenCustomXml }},
	{"flatten-simpleField", true, "splice simple field results into the paragraph", "flattening",
		func(o *Options) *bool { return &o.FlattenSimpleField }},
	{"flatten-sdt", false, "descend into structured document tags instead of emitting them as empty", "flattening",
		func(o *Options) *bool { return &o.FlattenSdt }},
	{"merge-consecutive-text", true, "join adjacent text values", "flattening",
		func(o *Options) *bool { return &o.MergeConsecutive }},
	{"flatten-inner-spaces", false, "collapse runs of spaces inside text", "flattening",
		func(o *Options) *bool { return &o.FlattenInnerSpaces }},

	{"include-paragraph-indent", true, "attach resolved indentation to paragraphs", "style",
		func(o *Options) *bool { return &o.IncludeParagraphIndent }},
	{"include-paragraph-numbering", true, "attach numbering properties to paragraphs", "style",
		func(o *Options) *bool { return &o.IncludeParagraphNumbering }},
	{"include-paragraph-style", false, "attach the paragraph style name", "style",
		func(o *Options) *bool { return &o.IncludeParagraphStyle }},
	{"include-cell-merge", false, "attach gridSpan and vMerge to table cells", "style",
		func(o *Options) *bool { return &o.IncludeCellMerge }},

	{"ignore-joiners", true, "remove zero-width joiners and non-joiners", "invisible",
		func(o *Options) *bool { return &o.IgnoreJoiners }},
	{"ignore-left-to-right-mark", false, "remove left-to-right marks", "invisible",
		func(o *Options) *bool { return &o.IgnoreLeftToRightMark }},
	{"ignore-right-to-left-mark", false, "remove right-to-left marks", "invisible",
		func(o *Options) *bool { return &o.IgnoreRightToLeftMark }},
	{"ignore-empty-table-description", true, "omit empty table descriptions", "invisible",
		func(o *Options) *bool { return &o.IgnoreEmptyTableDescription }},
	{"ignore-empty-table-caption", true, "omit empty table captions", "invisible",
		func(o *Options) *bool { return &o.IgnoreEmptyTableCaption }},
	{"ignore-empty-paragraphs", true, "drop paragraphs with no content", "invisible",
		func(o *Options) *bool { return &o.IgnoreEmptyParagraphs }},
	{"ignore-empty-text", true, "drop empty text values", "invisible",
		func(o *Options) *bool { return &o.IgnoreEmptyText }},
	{"remove-trailing-white-space", true, "trim the end of a paragraph's last text", "invisible",
		func(o *Options) *bool { return &o.RemoveTrailingWhiteSpace }},
	{"remove-leading-white-space", true, "trim the start of a paragraph's first text", "invisible",
		func(o *Options) *bool { return &o.RemoveLeadingWhiteSpace }},

	{"use-checkbox-default", true, "use a checkbox's default when it has no checked state", "forms",
		func(o *Options) *bool { return &o.UseCheckboxDefault }},
	{"greedy-text-input", true, "continue an open field into the following paragraph", "forms",
		func(o *Options) *bool { return &o.GreedyTextInput }},
	{"checkbox-as-text", false, "render checkboxes as text", "forms",
		func(o *Options) *bool { return &o.CheckboxAsText }},
	{"dropdown-as-text", false, "render dropdowns as text", "forms",
		func(o *Options) *bool { return &o.DropdownAsText }},
	{"textinput-as-text", false, "render text inputs as text", "forms",
		func(o *Options) *bool { return &o.TextInputAsText }},
	{"simplify-dropdown", true, "render dropdowns as a value and their options", "forms",
		func(o *Options) *bool { return &o.SimplifyDropdown }},
	{"simplify-textinput", true, "render text inputs as their value", "forms",
		func(o *Options) *bool { return &o.SimplifyTextInput }},
	{"simplify-checkbox", true, "render checkboxes as their value", "forms",
		func(o *Options) *bool { return &o.SimplifyCheckbox }},
	{"flatten-generic-field", true, "splice the results of other fields into the paragraph", "forms",
		func(o *Options) *bool { return &o.FlattenGenericField }},
	{"trim-dropdown-options", true, "trim white space around dropdown entries", "forms",
		func(o *Options) *bool { return &o.TrimDropdownOptions }},

	{"empty-as-text", false, "render opaque elements as text", "symbols",
		func(o *Options) *bool { return &o.EmptyAsText }},
	{"symbol-as-text", true, "render symbols as their character", "symbols",
		func(o *Options) *bool { return &o.SymbolAsText }},
	{"special-characters-as-text", true, "render breaks, tabs and hyphens as characters", "symbols",
		func(o *Options) *bool { return &o.SpecialCharactersAsText }},
	{"dumb-quotes", true, "replace typographic quotes with ASCII quotes", "symbols",
		func(o *Options) *bool { return &o.DumbQuotes }},
	{"dumb-hyphens", true, "replace dashes and no-break spaces with ASCII hyphens", "symbols",
		func(o *Options) *bool { return &o.DumbHyphens }},
	{"dumb-spaces", true, "replace typographic spaces with ASCII spaces", "symbols",
		func(o *Options) *bool { return &o.DumbSpaces }},
}

var byKey = func() map[string]*Entry {
	m := make(map[string]*Entry, len(catalog))
	for i := range catalog {
		m[catalog[i].Key] = &catalog[i]
	}
	return m
}()

// Defaults returns the documented defaults.
func Defaults() Options {
	var o Options
	for _, e := range catalog {
		*e.field(&o) = e.Default
	}
	return o
}

// Catalog returns every option in documentation order.
func Catalog() []Entry {
	return append([]Entry(nil), catalog...)
}

// Known reports whether key names an option.
func Known(key string) bool {
	_, ok := byKey[key]
	return ok
}

// Get returns the value of key.
func (o Options) Get(key string) (bool, bool) {
	e, ok := byKey[key]
	if !ok {
		return false, false
	}
	return *e.field(&o), true
}

// Set assigns key. It reports false when key is unknown.
func (o *Options) Set(key string, v bool) bool {
	e, ok := byKey[key]
	if !ok {
		return false
	}
	*e.field(o) = v
	return true
}

// Map returns every option keyed by name.
func (o Options) Map() map[string]bool {
	m := make(map[string]bool, len(catalog))
	for _, e := range catalog {
		m[e.Key] = *e.field(&o)
	}
	return m
}

// Apply overlays m on o and returns the result along with the keys that
// named no option, sorted. Values may be booleans or the strings accepted
// by strconv.ParseBool.
func (o Options) Apply(m map[string]any) (Options, []string, error) {
	var unknown []string
	for key, raw := range m {
		e, ok := byKey[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		v, err := toBool(raw)
		if err != nil {
			return o, nil, fmt.Errorf("%w: %s=%v", ErrBadValue, key, raw)
		}
		*e.field(&o) = v
	}
	sort.Strings(unknown)
	return o, unknown, nil
}

// FromMap overlays m on the defaults.
func FromMap(m map[string]any) (Options, []string, error) {
	return Defaults().Apply(m)
}

func toBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(t))
	case int:
		return t != 0, nil
	case int64:
		return t != 0, nil
	case uint64:
		return t != 0, nil
	}
	return false, ErrBadValue
}

// Load reads a YAML or JSON mapping of option keys.
func Load(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	m := map[string]any{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding options: %w", err)
	}
	return m, nil
}

// ParseAssignment splits a "key=value" pair, decoding value as YAML.
// A bare key means true.
func ParseAssignment(s string) (string, any, error) {
	key, val, ok := strings.Cut(s, "=")
	if !ok {
		return strings.TrimSpace(s), true, nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return "", nil, fmt.Errorf("option %s: %w", key, err)
	}
	return strings.TrimSpace(key), v, nil
}
