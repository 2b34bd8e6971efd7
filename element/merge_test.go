package element

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/blwarren/simplifydocx/options"
	"github.com/blwarren/simplifydocx/simple"
)

func text(s string) *simple.Value { return simple.Text(TypeText, s) }

func TestMerge(t *testing.T) {
	on := options.Options{MergeConsecutive: true, IgnoreEmptyText: true}

	tests := []struct {
		name string
		in   []*simple.Value
		opts options.Options
		want []*simple.Value
	}{
		{
			name: "consecutive text",
			in:   []*simple.Value{text("Hello"), text("World"), simple.Text(TypeEmpty, "[w:br]")},
			opts: on,
			want: []*simple.Value{text("HelloWorld"), simple.Text(TypeEmpty, "[w:br]")},
		},
		{
			name: "empty text dropped",
			in:   []*simple.Value{text(""), text("Content")},
			opts: on,
			want: []*simple.Value{text("Content")},
		},
		{
			name: "empty text kept",
			in:   []*simple.Value{text(""), text("Content")},
			opts: options.Options{},
			want: []*simple.Value{text(""), text("Content")},
		},
		{
			name: "merge across dropped empty",
			in:   []*simple.Value{text("a"), text(""), text("b")},
			opts: on,
			want: []*simple.Value{text("ab")},
		},
		{
			name: "other kinds separate runs",
			in:   []*simple.Value{text("a"), simple.NewBare("TabChar"), text("b"), text("c")},
			opts: on,
			want: []*simple.Value{text("a"), simple.NewBare("TabChar"), text("bc")},
		},
		{
			name: "merging off",
			in:   []*simple.Value{text("a"), text("b")},
			opts: options.Options{IgnoreEmptyText: true},
			want: []*simple.Value{text("a"), text("b")},
		},
		{
			name: "nothing",
			in:   nil,
			opts: on,
			want: []*simple.Value{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in, tt.opts)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge mismatch (-want +got):\n%s", diff)
			}
			if again := Merge(got, tt.opts); !cmp.Equal(got, again) {
				t.Errorf("Merge is not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestMergeLeavesInputAlone(t *testing.T) {
	in := []*simple.Value{text("a"), text("b"), text("c")}
	out := Merge(in, options.Options{MergeConsecutive: true})
	if len(out) != 1 {
		t.Fatalf("len = %d", len(out))
	}
	if s, _ := out[0].String(); s != "abc" {
		t.Errorf("merged = %q", s)
	}
	for i, want := range []string{"a", "b", "c"} {
		if s, _ := in[i].String(); s != want {
			t.Errorf("input %d changed to %q", i, s)
		}
	}
}
