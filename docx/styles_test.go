package docx

import (
	"testing"

	"github.com/blwarren/simplifydocx/node"
)

const testStyles = `<w:styles ` + wNS + `>
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="Base">
    <w:name w:val="Base"/>
    <w:pPr><w:ind w:left="100"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="2"/></w:numPr></w:pPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Derived">
    <w:name w:val="Derived"/>
    <w:basedOn w:val="Base"/>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Quote">
    <w:name w:val="Quote"/>
    <w:basedOn w:val="Derived"/>
    <w:pPr><w:ind w:left="300"/></w:pPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="LoopA"><w:basedOn w:val="LoopB"/></w:style>
  <w:style w:type="paragraph" w:styleId="LoopB"><w:basedOn w:val="LoopA"/></w:style>
</w:styles>`

func testParagraph(t *testing.T, pPr string) *node.Node {
	t.Helper()
	return node.MustParseString(`<w:p ` + wNS + `>` + pPr + `</w:p>`)
}

func testStyleResolver() *Styles {
	return NewStyles(node.MustParseString(testStyles), NewNumbering(node.MustParseString(testNumbering)))
}

func TestStyles_Indentation(t *testing.T) {
	s := testStyleResolver()

	tests := []struct {
		name     string
		pPr      string
		wantLeft string // "" means no indentation applies
	}{
		{"direct", `<w:pPr><w:pStyle w:val="Quote"/><w:ind w:left="5"/></w:pPr>`, "5"},
		{"numbering level", `<w:pPr><w:pStyle w:val="Quote"/><w:numPr><w:ilvl w:val="1"/><w:numId w:val="1"/></w:numPr></w:pPr>`, "1440"},
		{"numbering level without ind falls to style", `<w:pPr><w:pStyle w:val="Quote"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="2"/></w:numPr></w:pPr>`, "300"},
		{"own style", `<w:pPr><w:pStyle w:val="Quote"/></w:pPr>`, "300"},
		{"inherited style", `<w:pPr><w:pStyle w:val="Derived"/></w:pPr>`, "100"},
		{"style without ind", `<w:pPr><w:pStyle w:val="Normal"/></w:pPr>`, ""},
		{"unknown style", `<w:pPr><w:pStyle w:val="Nope"/></w:pPr>`, ""},
		{"inheritance loop", `<w:pPr><w:pStyle w:val="LoopA"/></w:pPr>`, ""},
		{"no properties", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ind := s.Indentation(testParagraph(t, tt.pPr))
			if tt.wantLeft == "" {
				if ind != nil {
					t.Errorf("Indentation = %v, want nil", ind)
				}
				return
			}
			if got := ind.AttrValue(node.W("left")); got != tt.wantLeft {
				t.Errorf("left = %q, want %q", got, tt.wantLeft)
			}
		})
	}
}

func TestStyles_Numbering(t *testing.T) {
	s := testStyleResolver()

	direct := s.Numbering(testParagraph(t, `<w:pPr><w:pStyle w:val="Derived"/><w:numPr><w:numId w:val="7"/></w:numPr></w:pPr>`))
	if got := direct.Child(wNumID).AttrValue(wVal); got != "7" {
		t.Errorf("direct numId = %q, want 7", got)
	}

	inherited := s.Numbering(testParagraph(t, `<w:pPr><w:pStyle w:val="Quote"/></w:pPr>`))
	if got := inherited.Child(wNumID).AttrValue(wVal); got != "2" {
		t.Errorf("inherited numId = %q, want 2", got)
	}

	if none := s.Numbering(testParagraph(t, `<w:pPr><w:pStyle w:val="Normal"/></w:pPr>`)); none != nil {
		t.Errorf("Numbering = %v, want nil", none)
	}
}

func TestStyles_ParagraphStyle(t *testing.T) {
	s := testStyleResolver()

	style := s.ParagraphStyle(testParagraph(t, `<w:pPr><w:pStyle w:val="Quote"/></w:pPr>`))
	if got := style.Child(node.W("name")).AttrValue(wVal); got != "Quote" {
		t.Errorf("style name = %q, want Quote", got)
	}
	if s.ParagraphStyle(testParagraph(t, ``)) != nil {
		t.Error("paragraph without pStyle should have no style")
	}
	if s.Style("Base") == nil {
		t.Error("Style(Base) = nil")
	}
}

func TestStyles_Empty(t *testing.T) {
	s := NewStyles(nil, nil)
	p := testParagraph(t, `<w:pPr><w:pStyle w:val="Quote"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr><w:ind w:left="5"/></w:pPr>`)

	if ind := s.Indentation(p); ind.AttrValue(node.W("left")) != "5" {
		t.Errorf("direct indentation should survive missing styles, got %v", ind)
	}
	if s.ParagraphStyle(p) != nil {
		t.Error("ParagraphStyle without styles should be nil")
	}
}

func TestPackage_Styles(t *testing.T) {
	p := openTestDOCX(t, "", map[string]string{
		"word/_rels/document.xml.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="custom-styles.xml"/>
</Relationships>`,
		"word/custom-styles.xml": testStyles,
		"word/numbering.xml":     testNumbering,
	})

	s := p.Styles()
	if s.Style("Quote") == nil {
		t.Fatal("styles should load from the relationship target")
	}
	para := testParagraph(t, `<w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>`)
	if ind := s.Indentation(para); ind.AttrValue(node.W("left")) != "720" {
		t.Errorf("numbering should load from the default part, got %v", ind)
	}
	if p.Styles() != s {
		t.Error("Styles should be cached")
	}
}
