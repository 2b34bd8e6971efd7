package docx

import (
	"strings"
	"testing"

	"github.com/blwarren/simplifydocx/node"
)

// describe renders each top-level block of a converted body on one line:
// the paragraph style or list position, then its text with breaks as "|".
func describe(body *node.Node) []string {
	var out []string
	for _, block := range body.Children {
		switch block.Name {
		case wP:
			out = append(out, describePara(block))
		case wTbl:
			var rows []string
			for _, tr := range block.ChildrenNamed(wTr) {
				var cells []string
				for _, tc := range tr.ChildrenNamed(wTc) {
					cell := ""
					for i, p := range tc.ChildrenNamed(wP) {
						if i > 0 {
							cell += "/"
						}
						cell += describePara(p)
					}
					if span := tc.Path(wTcPr, wGridSpan).AttrValue(wVal); span != "" {
						cell += "*" + span
					}
					cells = append(cells, cell)
				}
				rows = append(rows, strings.Join(cells, ","))
			}
			out = append(out, "table["+strings.Join(rows, ";")+"]")
		}
	}
	return out
}

func describePara(p *node.Node) string {
	var sb strings.Builder
	if style := p.Path(wPPr, wPStyle).AttrValue(wVal); style != "" {
		sb.WriteString(style + ": ")
	}
	if numPr := p.Path(wPPr, wNumPr); numPr != nil {
		sb.WriteString("list" + numPr.Child(wNumID).AttrValue(wVal) + "." + numPr.Child(wIlvl).AttrValue(wVal) + ": ")
	}
	for _, r := range p.ChildrenNamed(wR) {
		for _, c := range r.Children {
			switch c.Name {
			case wT:
				sb.WriteString(c.Text)
			case wBr:
				sb.WriteString("|")
			}
		}
	}
	return sb.String()
}

func convertHTML(t *testing.T, src string) []string {
	t.Helper()
	root, err := ConvertHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ConvertHTML failed: %v", err)
	}
	if root.Name != wDocument {
		t.Fatalf("root = %s, want w:document", root.Prefixed())
	}
	return describe(root.Child(wBody))
}

func TestConvertHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "headings and paragraphs",
			html: `<html><head><title>ignored</title></head><body><h1>Title</h1><p>First   paragraph
			text</p><h3>Sub</h3></body></html>`,
			want: []string{"Heading1: Title", "First paragraph text", "Heading3: Sub"},
		},
		{
			name: "inline markup keeps its text",
			html: `<p>Hello <b>bold</b> and <a href="#">link</a></p>`,
			want: []string{"Hello bold and link"},
		},
		{
			name: "line breaks",
			html: `<p>one<br>two</p>`,
			want: []string{"one|two"},
		},
		{
			name: "preformatted text keeps lines",
			html: "<pre>a  b\nc</pre>",
			want: []string{"a  b|c"},
		},
		{
			name: "lists",
			html: `<ul><li>one</li><li>two<ol><li>nested</li></ol></li></ul>`,
			want: []string{"list1.0: one", "list1.0: two", "list2.1: nested"},
		},
		{
			name: "skipped elements",
			html: `<p>kept</p><script>var x = 1;</script><style>p {}</style>`,
			want: []string{"kept"},
		},
		{
			name: "containers",
			html: `<div><p>a</p><div>b</div></div><section>c</section>`,
			want: []string{"a", "b", "c"},
		},
		{
			name: "loose text",
			html: `loose <i>text</i><p>para</p>tail`,
			want: []string{"loose text", "para", "tail"},
		},
		{
			name: "tables",
			html: `<table><thead><tr><th>H1</th><th>H2</th></tr></thead><tbody><tr><td colspan="2">wide</td></tr><tr><td><p>x</p><p>y</p></td><td></td></tr></tbody></table>`,
			want: []string{"table[H1,H2;wide*2;x/y,]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertHTML(t, tt.html)
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("blocks =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestConvertHTML_PreservesSpace(t *testing.T) {
	root, err := ConvertHTML(strings.NewReader(`<p>a <b>b</b></p>`))
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range root.Path(wBody, wP).ChildrenNamed(wR) {
		if v := r.Child(wT).AttrValue(xmlSpace); v != "preserve" {
			t.Errorf("xml:space = %q, want preserve", v)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a  b", "a b"},
		{"\n\t a \r\n", " a "},
		{"", ""},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := collapseSpace(tt.in); got != tt.want {
			t.Errorf("collapseSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
