package node

import (
	"encoding/xml"
	"errors"
	"testing"
)

const doc = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t xml:space="preserve"> Hello </w:t></w:r></w:p>
    <w:altChunk r:id="rId7"/>
  </w:body>
</w:document>`

func TestParse(t *testing.T) {
	root, err := ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	if root.Name != W("document") {
		t.Errorf("root name = %v", root.Name)
	}
	if root.Prefixed() != "w:document" {
		t.Errorf("Prefixed() = %q", root.Prefixed())
	}
	if len(root.Attr) != 0 {
		t.Errorf("namespace declarations should be dropped, got %v", root.Attr)
	}

	body := root.Child(W("body"))
	if body == nil {
		t.Fatal("missing body")
	}
	if len(body.Children) != 2 {
		t.Fatalf("expected 2 body children, got %d", len(body.Children))
	}

	p := body.FirstChild()
	if p.Parent() != body {
		t.Error("parent link broken")
	}
	if p.Next() != body.Children[1] {
		t.Error("next-sibling link broken")
	}
	if body.Children[1].Next() != nil {
		t.Error("last child should have no next sibling")
	}

	if got := p.Path(W("pPr"), W("pStyle")).AttrValue(W("val")); got != "Heading1" {
		t.Errorf("pStyle val = %q", got)
	}
	if p.Path(W("pPr"), W("numPr")) != nil {
		t.Error("Path should return nil for a missing step")
	}

	text := p.Path(W("r"), W("t"))
	if text.Text != " Hello " {
		t.Errorf("text = %q", text.Text)
	}
	if v, ok := text.Attribute(Q("xml:space")); !ok || v != "preserve" {
		t.Errorf("xml:space = %q, %v", v, ok)
	}

	chunk := body.Children[1]
	if got := chunk.AttrValue(Q("r:id")); got != "rId7" {
		t.Errorf("r:id = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseString(``); !errors.Is(err, ErrNoRoot) {
		t.Errorf("expected ErrNoRoot, got %v", err)
	}
	if _, err := ParseString(`<a><b></a>`); err == nil {
		t.Error("expected syntax error")
	}
	if _, err := ParseString(`<a/><b/>`); err == nil {
		t.Error("expected error for a second root")
	}
}

func TestBuild(t *testing.T) {
	p := New(W("p"))
	r1 := p.Append(New(W("r")))
	r2 := p.Append(New(W("r"), xml.Attr{Name: W("rsidR"), Value: "00A1"}))

	if r1.Next() != r2 || r2.Parent() != p {
		t.Error("Append should maintain sibling links")
	}
	if got := len(p.ChildrenNamed(W("r"))); got != 2 {
		t.Errorf("ChildrenNamed = %d", got)
	}

	r2.SetAttr(W("rsidR"), "00B2")
	r2.SetAttr(W("rsidRPr"), "00C3")
	if r2.AttrValue(W("rsidR")) != "00B2" || r2.AttrValue(W("rsidRPr")) != "00C3" {
		t.Errorf("SetAttr failed: %v", r2.Attr)
	}

	var missing *Node
	if missing.Child(W("r")) != nil || missing.AttrValue(W("val")) != "" {
		t.Error("nil node lookups should be empty")
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		prefixed string
		name     xml.Name
	}{
		{"w:p", xml.Name{Space: NSW, Local: "p"}},
		{"m:oMath", xml.Name{Space: NSM, Local: "oMath"}},
		{"mc:AlternateContent", xml.Name{Space: NSMC, Local: "AlternateContent"}},
		{"plain", xml.Name{Local: "plain"}},
	}
	for _, tt := range tests {
		if got := Q(tt.prefixed); got != tt.name {
			t.Errorf("Q(%q) = %v", tt.prefixed, got)
		}
		if got := Prefixed(tt.name); got != tt.prefixed {
			t.Errorf("Prefixed(%v) = %q", tt.name, got)
		}
	}

	if got := Prefixed(xml.Name{Space: "urn:x", Local: "y"}); got != "{urn:x}y" {
		t.Errorf("unknown namespace rendered as %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Q should panic on an unknown prefix")
		}
	}()
	Q("nope:p")
}
