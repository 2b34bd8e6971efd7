package dispatch

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/blwarren/simplifydocx/node"
)

func TestResolveChainPrecedence(t *testing.T) {
	x := node.W("x")
	r := New()
	mustRegister(t, r, "A", Definition{Ignore: []xml.Name{x}})
	mustRegister(t, r, "B", Definition{Yield: map[xml.Name]string{x: "K"}, Extends: []string{"A"}})
	mustRegister(t, r, "C", Definition{Extends: []string{"B"}})

	if err := r.ResolveAll(); err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}

	c, ok := r.Resolved("C")
	if !ok {
		t.Fatal("C not resolved")
	}
	if kind, ok := c.Yields(x); !ok || kind != "K" {
		t.Errorf("C yields x = %q, %v; want K", kind, ok)
	}
	if c.Ignores(x) {
		t.Error("C should not also ignore x")
	}

	a, _ := r.Resolved("A")
	if !a.Ignores(x) {
		t.Error("A should still ignore x")
	}
}

func TestOwnEntryShadowsEveryInheritedTreatment(t *testing.T) {
	x := node.W("x")
	r := New()
	mustRegister(t, r, "A", Definition{
		Yield: map[xml.Name]string{x: "K"},
		Nest:  map[xml.Name]string{x: "A"},
	})
	mustRegister(t, r, "B", Definition{Ignore: []xml.Name{x}, Extends: []string{"A"}})

	b := mustResolved(t, r, "B")
	if _, ok := b.Yields(x); ok {
		t.Error("inherited yield should be shadowed")
	}
	if _, ok := b.Nests(x); ok {
		t.Error("inherited nest should be shadowed")
	}
	if !b.Ignores(x) {
		t.Error("own ignore should apply")
	}
}

func TestLaterExtendsWin(t *testing.T) {
	x, y := node.W("x"), node.W("y")
	r := New()
	mustRegister(t, r, "A", Definition{Yield: map[xml.Name]string{x: "first", y: "onlyA"}})
	mustRegister(t, r, "B", Definition{Warn: map[xml.Name]string{x: "second"}})
	mustRegister(t, r, "D", Definition{Extends: []string{"A", "B"}})

	d := mustResolved(t, r, "D")
	if _, ok := d.Yields(x); ok {
		t.Error("x yield from A should lose to B")
	}
	if msg, ok := d.Warns(x); !ok || msg != "second" {
		t.Errorf("x warn = %q, %v; want second", msg, ok)
	}
	if kind, _ := d.Yields(y); kind != "onlyA" {
		t.Errorf("y yield = %q, want onlyA", kind)
	}
}

func TestYieldAndNestInOneLayer(t *testing.T) {
	x := node.W("x")
	r := New()
	mustRegister(t, r, "A", Definition{Ignore: []xml.Name{x}})
	mustRegister(t, r, "B", Definition{
		Yield:   map[xml.Name]string{x: "K"},
		Nest:    map[xml.Name]string{x: "A"},
		Extends: []string{"A"},
	})

	b := mustResolved(t, r, "B")
	if _, ok := b.Yields(x); !ok {
		t.Error("expected yield")
	}
	if target, ok := b.Nests(x); !ok || target != "A" {
		t.Errorf("expected nest into A, got %q", target)
	}
	if b.Ignores(x) {
		t.Error("inherited ignore should be dropped")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	r := New()
	mustRegister(t, r, "dup-name", Definition{})

	err := r.Register("dup-name", Definition{})
	if !errors.Is(err, ErrDuplicateDefinition) {
		t.Fatalf("expected ErrDuplicateDefinition, got %v", err)
	}
	var dup *DuplicateDefinitionError
	if !errors.As(err, &dup) || dup.Name != "dup-name" {
		t.Errorf("expected DuplicateDefinitionError naming dup-name, got %v", err)
	}

	r.Replace("dup-name", Definition{Ignore: []xml.Name{node.W("p")}})

	r.Reset()
	if err := r.Register("dup-name", Definition{}); err != nil {
		t.Errorf("register after reset: %v", err)
	}
}

func TestUnresolvedDependency(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"extends", Definition{Extends: []string{"missing"}}},
		{"nest target", Definition{Nest: map[xml.Name]string{node.W("r"): "missing"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			mustRegister(t, r, "dependent", tt.def)
			err := r.ResolveAll()
			var unresolved *UnresolvedDependencyError
			if !errors.As(err, &unresolved) {
				t.Fatalf("expected UnresolvedDependencyError, got %v", err)
			}
			if unresolved.Name != "dependent" || unresolved.Dependency != "missing" {
				t.Errorf("unexpected error contents: %+v", unresolved)
			}
			if !errors.Is(err, ErrUnresolvedDependency) {
				t.Error("expected errors.Is ErrUnresolvedDependency")
			}
		})
	}
}

func TestCycle(t *testing.T) {
	r := New()
	mustRegister(t, r, "A", Definition{Extends: []string{"B"}})
	mustRegister(t, r, "B", Definition{Extends: []string{"A"}})

	if err := r.ResolveAll(); !errors.Is(err, ErrCyclicDefinition) {
		t.Fatalf("expected ErrCyclicDefinition, got %v", err)
	}
}

func TestResolveAllIsIdempotent(t *testing.T) {
	r := New()
	mustRegister(t, r, "A", Definition{Ignore: []xml.Name{node.W("x")}})

	first := mustResolved(t, r, "A")
	if err := r.ResolveAll(); err != nil {
		t.Fatal(err)
	}
	second, _ := r.Resolved("A")
	if first != second {
		t.Error("second ResolveAll should keep the memoized result")
	}

	r.Replace("A", Definition{})
	if _, ok := r.Resolved("A"); ok {
		t.Error("registration should clear resolved state")
	}
	third := mustResolved(t, r, "A")
	if third.Ignores(node.W("x")) {
		t.Error("resolution should reflect the replaced definition")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := New()
	mustRegister(t, r, "A", Definition{})
	c := r.Clone()
	c.Replace("B", Definition{})

	if r.Has("B") {
		t.Error("clone registration leaked into original")
	}
	if !c.Has("A") {
		t.Error("clone lost original definition")
	}
}

func TestTags(t *testing.T) {
	r := New()
	mustRegister(t, r, "A", Definition{
		Yield:  map[xml.Name]string{node.W("t"): "text"},
		Ignore: []xml.Name{node.W("rPr")},
		Skip:   map[xml.Name]Skip{node.W("moveFromRangeStart"): {IDAttr: node.W("id"), End: node.W("moveFromRangeEnd")}},
	})
	a := mustResolved(t, r, "A")

	var got []string
	for _, tag := range a.Tags() {
		got = append(got, node.Prefixed(tag))
	}
	want := []string{"w:moveFromRangeStart", "w:rPr", "w:t"}
	if len(got) != len(want) {
		t.Fatalf("Tags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tags()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if !a.Mentions(node.W("rPr")) || a.Mentions(node.W("p")) {
		t.Error("Mentions disagrees with Tags")
	}
}

func mustRegister(t *testing.T, r *Registry, name string, def Definition) {
	t.Helper()
	if err := r.Register(name, def); err != nil {
		t.Fatalf("Register(%q): %v", name, err)
	}
}

func mustResolved(t *testing.T, r *Registry, name string) *Resolved {
	t.Helper()
	if err := r.ResolveAll(); err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	d, ok := r.Resolved(name)
	if !ok {
		t.Fatalf("%q not resolved", name)
	}
	return d
}
