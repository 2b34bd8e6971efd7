package element

import (
	"errors"
	"testing"

	"github.com/blwarren/simplifydocx/dispatch"
	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/options"
)

func resolved(t *testing.T, r *dispatch.Registry, name string) *dispatch.Resolved {
	t.Helper()
	res, ok := r.Resolved(name)
	if !ok {
		t.Fatalf("%s is not resolved", name)
	}
	return res
}

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry(options.Defaults())
	if err != nil {
		t.Fatal(err)
	}

	p := resolved(t, r, "CT_P")
	if def, ok := p.Nests(node.Q("w:r")); !ok || def != "CT_R" {
		t.Errorf("CT_P nests w:r into %q, %v", def, ok)
	}
	if !p.Ignores(node.Q("w:pPr")) {
		t.Error("CT_P should ignore w:pPr")
	}
	if msg, ok := p.Warns(node.Q("w:bdo")); !ok || msg != textDirectionWarning {
		t.Errorf("CT_P warns on w:bdo with %q, %v", msg, ok)
	}
	if _, ok := p.Skips(node.Q("w:moveFromRangeStart")); !ok {
		t.Error("CT_P should skip moveFrom ranges")
	}
	if def, ok := p.Nests(node.Q("w:hyperlink")); !ok || def != DefPContent {
		t.Errorf("flattened hyperlink nests into %q, %v", def, ok)
	}

	body := resolved(t, r, "CT_Body")
	for tag, kind := range map[string]string{"w:p": KindParagraph, "w:tbl": KindTable, "w:altChunk": KindAltChunk, "w:sdt": KindEmpty} {
		if got, ok := body.Yields(node.Q(tag)); !ok || got != kind {
			t.Errorf("CT_Body yields %s as %q, %v; want %q", tag, got, ok, kind)
		}
	}
	if !body.Ignores(node.Q("w:sectPr")) {
		t.Error("CT_Body should ignore w:sectPr")
	}
}

func TestRegistryFollowsOptions(t *testing.T) {
	opts := options.Defaults()
	opts.FlattenHyperlink = false
	opts.FlattenSmartTag = false
	opts.FlattenSdt = true
	r, err := NewRegistry(opts)
	if err != nil {
		t.Fatal(err)
	}

	p := resolved(t, r, "CT_P")
	if kind, ok := p.Yields(node.Q("w:hyperlink")); !ok || kind != KindHyperlink {
		t.Errorf("w:hyperlink yields %q, %v", kind, ok)
	}
	if _, ok := p.Nests(node.Q("w:hyperlink")); ok {
		t.Error("w:hyperlink should not also nest")
	}
	if kind, ok := p.Yields(node.Q("w:smartTag")); !ok || kind != KindSmartTag {
		t.Errorf("w:smartTag yields %q, %v", kind, ok)
	}
	if def, ok := resolved(t, r, "CT_Tc").Nests(node.Q("w:sdt")); !ok || def != DefSdtContentBlock {
		t.Errorf("w:sdt in a cell nests into %q, %v", def, ok)
	}
	if def, ok := resolved(t, r, "CT_Row").Nests(node.Q("w:sdt")); !ok || def != DefSdtContentCell {
		t.Errorf("w:sdt in a row nests into %q, %v", def, ok)
	}

	if err := Configure(r, options.Defaults()); err != nil {
		t.Fatal(err)
	}
	if def, ok := resolved(t, r, "CT_P").Nests(node.Q("w:hyperlink")); !ok || def != DefPContent {
		t.Errorf("after Configure, w:hyperlink nests into %q, %v", def, ok)
	}
}

func TestEveryYieldIsConstructible(t *testing.T) {
	for _, flatten := range []bool{false, true} {
		opts := options.Defaults()
		opts.FlattenHyperlink = flatten
		opts.FlattenSmartTag = flatten
		opts.FlattenCustomXml = flatten
		opts.FlattenSimpleField = flatten
		opts.FlattenSdt = flatten
		r, err := NewRegistry(opts)
		if err != nil {
			t.Fatalf("flatten=%v: %v", flatten, err)
		}
		for _, name := range r.Names() {
			res := resolved(t, r, name)
			for _, tag := range res.Tags() {
				if kind, ok := res.Yields(tag); ok && !KnownKind(kind) {
					t.Errorf("%s yields %s as unknown kind %q", name, node.Prefixed(tag), kind)
				}
			}
		}
	}
}

func TestConfigureRejectsUnknownKind(t *testing.T) {
	r := dispatch.New()
	if err := RegisterStatic(r); err != nil {
		t.Fatal(err)
	}
	r.Replace("CT_R", dispatch.Definition{Yield: kinds("sparkle", "w:t")})
	err := Configure(r, options.Defaults())
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestStaticDefinitionsRegisterOnce(t *testing.T) {
	r := dispatch.New()
	if err := RegisterStatic(r); err != nil {
		t.Fatal(err)
	}
	err := RegisterStatic(r)
	if !errors.Is(err, dispatch.ErrDuplicateDefinition) {
		t.Errorf("second registration: err = %v, want ErrDuplicateDefinition", err)
	}

	// static definitions alone leave the option-driven groups unregistered
	if err := r.ResolveAll(); !errors.Is(err, dispatch.ErrUnresolvedDependency) {
		t.Errorf("ResolveAll: err = %v, want ErrUnresolvedDependency", err)
	}
}
