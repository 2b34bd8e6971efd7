package dispatch

import (
	"encoding/xml"
	"sort"

	"github.com/blwarren/simplifydocx/node"
)

// Skip describes a sibling range. The range starts at the tag that maps
// to the Skip and ends at the next sibling named End whose IDAttr value
// matches the start's.
type Skip struct {
	IDAttr xml.Name
	End    xml.Name
}

// Definition is the raw, unresolved form of a dispatch definition.
type Definition struct {
	// Yield maps a tag to the element kind constructed for it.
	Yield map[xml.Name]string
	// Nest maps a tag to the definition its children are walked under.
	Nest   map[xml.Name]string
	Ignore []xml.Name
	// Warn maps a tag to the message reported when it is dropped.
	Warn    map[xml.Name]string
	Skip    map[xml.Name]Skip
	Extends []string
}

// Resolved is a definition with every ancestor merged in. It is read-only.
type Resolved struct {
	Name string

	yield  map[xml.Name]string
	nest   map[xml.Name]string
	ignore map[xml.Name]bool
	warn   map[xml.Name]string
	skip   map[xml.Name]Skip
}

func newResolved(name string) *Resolved {
	return &Resolved{
		Name:   name,
		yield:  make(map[xml.Name]string),
		nest:   make(map[xml.Name]string),
		ignore: make(map[xml.Name]bool),
		warn:   make(map[xml.Name]string),
		skip:   make(map[xml.Name]Skip),
	}
}

// Yields returns the element kind yielded for tag.
func (r *Resolved) Yields(tag xml.Name) (string, bool) {
	k, ok := r.yield[tag]
	return k, ok
}

// Nests returns the definition tag's children are walked under.
func (r *Resolved) Nests(tag xml.Name) (string, bool) {
	k, ok := r.nest[tag]
	return k, ok
}

// Ignores reports whether tag is silently dropped.
func (r *Resolved) Ignores(tag xml.Name) bool {
	return r.ignore[tag]
}

// Warns returns the message reported when tag is dropped.
func (r *Resolved) Warns(tag xml.Name) (string, bool) {
	m, ok := r.warn[tag]
	return m, ok
}

// Skips returns the range tag opens.
func (r *Resolved) Skips(tag xml.Name) (Skip, bool) {
	s, ok := r.skip[tag]
	return s, ok
}

// Mentions reports whether the definition treats tag in any way.
func (r *Resolved) Mentions(tag xml.Name) bool {
	_, y := r.yield[tag]
	_, n := r.nest[tag]
	_, w := r.warn[tag]
	_, s := r.skip[tag]
	return y || n || w || s || r.ignore[tag]
}

// Tags returns every tag the definition mentions, sorted by prefixed name.
func (r *Resolved) Tags() []xml.Name {
	seen := make(map[xml.Name]bool)
	for t := range r.yield {
		seen[t] = true
	}
	for t := range r.nest {
		seen[t] = true
	}
	for t := range r.ignore {
		seen[t] = true
	}
	for t := range r.warn {
		seen[t] = true
	}
	for t := range r.skip {
		seen[t] = true
	}
	tags := make([]xml.Name, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool {
		return node.Prefixed(tags[i]) < node.Prefixed(tags[j])
	})
	return tags
}

// layer is anything whose treatments can be merged: a raw definition's own
// entries or an ancestor's resolved tables.
type layer struct {
	yield  map[xml.Name]string
	nest   map[xml.Name]string
	ignore map[xml.Name]bool
	warn   map[xml.Name]string
	skip   map[xml.Name]Skip
}

func (d Definition) layer() layer {
	l := layer{yield: d.Yield, nest: d.Nest, warn: d.Warn, skip: d.Skip}
	if len(d.Ignore) > 0 {
		l.ignore = make(map[xml.Name]bool, len(d.Ignore))
		for _, t := range d.Ignore {
			l.ignore[t] = true
		}
	}
	return l
}

func (r *Resolved) layer() layer {
	return layer{yield: r.yield, nest: r.nest, ignore: r.ignore, warn: r.warn, skip: r.skip}
}

// merge lays l over r. Every tag l mentions loses whatever treatment r
// gave it before l's treatments are copied in, so a layer never combines
// with a lower one for the same tag.
func (r *Resolved) merge(l layer) {
	drop := func(t xml.Name) {
		delete(r.yield, t)
		delete(r.nest, t)
		delete(r.ignore, t)
		delete(r.warn, t)
		delete(r.skip, t)
	}
	for t := range l.yield {
		drop(t)
	}
	for t := range l.nest {
		drop(t)
	}
	for t := range l.ignore {
		drop(t)
	}
	for t := range l.warn {
		drop(t)
	}
	for t := range l.skip {
		drop(t)
	}

	for t, k := range l.yield {
		r.yield[t] = k
	}
	for t, k := range l.nest {
		r.nest[t] = k
	}
	for t := range l.ignore {
		r.ignore[t] = true
	}
	for t, m := range l.warn {
		r.warn[t] = m
	}
	for t, s := range l.skip {
		r.skip[t] = s
	}
}

// Registry stores dispatch definitions. A Registry is owned by a single
// conversion; use Clone to derive an independent copy.
type Registry struct {
	defs     map[string]Definition
	resolved map[string]*Resolved
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a raw definition. It fails if name is already registered.
func (r *Registry) Register(name string, def Definition) error {
	if _, exists := r.defs[name]; exists {
		return &DuplicateDefinitionError{Name: name}
	}
	r.defs[name] = def
	r.resolved = nil
	return nil
}

// Replace adds or overwrites a raw definition.
func (r *Registry) Replace(name string, def Definition) {
	r.defs[name] = def
	r.resolved = nil
}

// Reset removes every definition.
func (r *Registry) Reset() {
	r.defs = make(map[string]Definition)
	r.resolved = nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Definition returns the raw definition registered under name.
func (r *Registry) Definition(name string) (Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a registry holding the same raw definitions. Resolution
// state is not shared.
func (r *Registry) Clone() *Registry {
	c := New()
	for name, def := range r.defs {
		c.defs[name] = def
	}
	return c
}

// ResolveAll resolves every registered definition. It is a no-op when
// nothing was registered since the last successful call.
//
// Precedence: a definition's own entries win over inherited ones; among
// the definitions it extends, later entries win over earlier ones.
func (r *Registry) ResolveAll() error {
	if r.resolved != nil {
		return nil
	}

	resolved := make(map[string]*Resolved, len(r.defs))
	visiting := make(map[string]bool)
	var path []string

	var resolve func(name string) error
	resolve = func(name string) error {
		if _, done := resolved[name]; done {
			return nil
		}
		if visiting[name] {
			return &CycleError{Path: append(append([]string(nil), path...), name)}
		}
		def := r.defs[name]
		visiting[name] = true
		path = append(path, name)
		defer func() {
			visiting[name] = false
			path = path[:len(path)-1]
		}()

		out := newResolved(name)
		for _, dep := range def.Extends {
			if _, ok := r.defs[dep]; !ok {
				return &UnresolvedDependencyError{Name: name, Dependency: dep}
			}
			if err := resolve(dep); err != nil {
				return err
			}
			out.merge(resolved[dep].layer())
		}
		out.merge(def.layer())
		resolved[name] = out
		return nil
	}

	for _, name := range r.Names() {
		if err := resolve(name); err != nil {
			return err
		}
	}

	for _, name := range r.Names() {
		for _, target := range resolved[name].nest {
			if _, ok := r.defs[target]; !ok {
				return &UnresolvedDependencyError{Name: name, Dependency: target}
			}
		}
	}

	r.resolved = resolved
	return nil
}

// Resolved returns the resolved form of name. It returns false when name
// is unknown or ResolveAll has not succeeded since the last registration.
func (r *Registry) Resolved(name string) (*Resolved, bool) {
	if r.resolved == nil {
		return nil, false
	}
	d, ok := r.resolved[name]
	return d, ok
}
