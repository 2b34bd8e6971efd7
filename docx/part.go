package docx

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/blwarren/simplifydocx/element"
	"github.com/blwarren/simplifydocx/format"
	"github.com/blwarren/simplifydocx/node"
)

// Part is one parsed part of a package. It is the element.Source a
// conversion reads from.
type Part struct {
	pkg  *Package
	name string
	root *node.Node
	rels map[string]relationshipXML

	related map[string]relatedPart
}

type relatedPart struct {
	src element.Source
	err error
}

var _ element.Source = (*Part)(nil)

func (p *Package) loadPart(name string) (*Part, error) {
	data, err := p.read(name)
	if err != nil {
		return nil, err
	}
	root, err := node.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return p.newPart(name, root)
}

func (p *Package) newPart(name string, root *node.Node) (*Part, error) {
	rels, err := p.readRelationships(relsName(name))
	if err != nil {
		return nil, fmt.Errorf("parsing relationships of %s: %w", name, err)
	}
	return &Part{
		pkg:     p,
		name:    name,
		root:    root,
		rels:    rels,
		related: make(map[string]relatedPart),
	}, nil
}

// Name returns the part's name inside the archive.
func (p *Part) Name() string {
	return p.name
}

// Package returns the package the part belongs to.
func (p *Part) Package() *Package {
	return p.pkg
}

// Root returns the part's root element.
func (p *Part) Root() *node.Node {
	return p.root
}

// Styles returns the package's style resolver.
func (p *Part) Styles() element.StyleResolver {
	return p.pkg.Styles()
}

// Target returns the raw target of a relationship.
func (p *Part) Target(id string) (string, bool) {
	rel, ok := p.rels[id]
	if !ok {
		return "", false
	}
	return rel.Target, true
}

// Related resolves a relationship to a readable part. Results, failures
// included, are cached per id.
func (p *Part) Related(id string) (element.Source, error) {
	if r, ok := p.related[id]; ok {
		return r.src, r.err
	}
	src, err := p.resolve(id)
	if err != nil {
		err = fmt.Errorf("resolving %s from %s: %w", id, p.name, err)
		src = nil
	}
	p.related[id] = relatedPart{src: src, err: err}
	return src, err
}

func (p *Part) resolve(id string) (element.Source, error) {
	rel, ok := p.rels[id]
	if !ok {
		return nil, ErrUnknownRelationship
	}
	if rel.external() {
		return nil, fmt.Errorf("%w: %s", ErrExternalTarget, rel.Target)
	}

	name := resolveTarget(p.name, rel.Target)
	if !p.pkg.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}

	switch ext := strings.ToLower(path.Ext(name)); {
	case format.Detect(name) != format.Unknown:
		return p.pkg.embedded(name)
	case ext == ".htm" || ext == ".html" || ext == ".xhtml":
		return p.pkg.htmlPart(name)
	case ext == ".xml":
		return p.pkg.Part(name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPart, name)
	}
}

// embedded opens a package stored inside this one and returns its main
// part.
func (p *Package) embedded(name string) (*Part, error) {
	if p.depth+1 > MaxNesting {
		return nil, ErrTooDeep
	}
	data, err := p.read(name)
	if err != nil {
		return nil, err
	}
	nested, err := openBytes(data, p.depth+1)
	if err != nil {
		return nil, err
	}
	return nested.Main()
}

// htmlPart converts an HTML part into a document part.
func (p *Package) htmlPart(name string) (*Part, error) {
	if part, ok := p.parts[name]; ok {
		return part, nil
	}
	data, err := p.read(name)
	if err != nil {
		return nil, err
	}
	root, err := ConvertHTML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", name, err)
	}
	part, err := p.newPart(name, root)
	if err != nil {
		return nil, err
	}
	p.parts[name] = part
	return part, nil
}
