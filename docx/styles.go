package docx

import (
	"github.com/blwarren/simplifydocx/element"
	"github.com/blwarren/simplifydocx/node"
)

var (
	wStyle   = node.W("style")
	wStyleID = node.W("styleId")
	wBasedOn = node.W("basedOn")
	wVal     = node.W("val")
	wPPr     = node.W("pPr")
	wPStyle  = node.W("pStyle")
	wInd     = node.W("ind")
	wNumPr   = node.W("numPr")
	wNumID   = node.W("numId")
	wIlvl    = node.W("ilvl")
)

// Styles resolves paragraph formatting through direct properties, list
// numbering and the paragraph style hierarchy.
type Styles struct {
	styles    map[string]*node.Node // styleId -> w:style
	numbering *Numbering
}

var _ element.StyleResolver = (*Styles)(nil)

// NewStyles creates a resolver from a parsed w:styles root, which may be
// nil, and the package's numbering definitions.
func NewStyles(root *node.Node, numbering *Numbering) *Styles {
	s := &Styles{
		styles:    make(map[string]*node.Node),
		numbering: numbering,
	}
	if numbering == nil {
		s.numbering = NewNumbering(nil)
	}
	for _, style := range root.ChildrenNamed(wStyle) {
		if id, ok := style.Attribute(wStyleID); ok {
			s.styles[id] = style
		}
	}
	return s
}

// Style returns the w:style with the given id, or nil.
func (s *Styles) Style(id string) *node.Node {
	return s.styles[id]
}

// ParagraphStyle returns the style named by the paragraph's w:pStyle.
func (s *Styles) ParagraphStyle(p *node.Node) *node.Node {
	id := p.Path(wPPr, wPStyle).AttrValue(wVal)
	if id == "" {
		return nil
	}
	return s.styles[id]
}

// Indentation returns the w:ind that applies to p. Direct formatting
// wins, then the paragraph's numbering level, then the style hierarchy.
func (s *Styles) Indentation(p *node.Node) *node.Node {
	if ind := p.Path(wPPr, wInd); ind != nil {
		return ind
	}
	if numPr := p.Path(wPPr, wNumPr); numPr != nil {
		lvl := s.numbering.Level(numPr.Child(wNumID).AttrValue(wVal), numPr.Child(wIlvl).AttrValue(wVal))
		if ind := lvl.Path(wPPr, wInd); ind != nil {
			return ind
		}
	}
	for _, style := range s.chain(p) {
		if ind := style.Path(wPPr, wInd); ind != nil {
			return ind
		}
	}
	return nil
}

// Numbering returns the w:numPr that applies to p, either direct or
// inherited from its style hierarchy.
func (s *Styles) Numbering(p *node.Node) *node.Node {
	if numPr := p.Path(wPPr, wNumPr); numPr != nil {
		return numPr
	}
	for _, style := range s.chain(p) {
		if numPr := style.Path(wPPr, wNumPr); numPr != nil {
			return numPr
		}
	}
	return nil
}

// chain returns the paragraph's style followed by the styles it is based
// on, most derived first.
func (s *Styles) chain(p *node.Node) []*node.Node {
	var chain []*node.Node
	visited := make(map[string]bool)

	current := p.Path(wPPr, wPStyle).AttrValue(wVal)
	for current != "" && !visited[current] {
		visited[current] = true
		def, ok := s.styles[current]
		if !ok {
			break
		}
		chain = append(chain, def)
		current = def.Child(wBasedOn).AttrValue(wVal)
	}

	return chain
}
