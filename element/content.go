package element

import (
	"strings"
	"unicode"

	"github.com/blwarren/simplifydocx/diag"
	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/simple"
)

// serializeContent drives the paragraph-content pass over n's children.
// Ordinary elements are serialized in place. A field begin marker opens a
// FieldChar, which swallows the elements that follow until its end
// marker arrives. A field still open when the children run out may
// continue into the next paragraph among siblings.
func serializeContent(ctx *Context, n *node.Node, definition string, siblings *Cursor) ([]*simple.Value, error) {
	cur, err := ctx.Children(n, definition)
	if err != nil {
		return nil, err
	}

	var (
		open *FieldChar
		bare []*simple.Value
	)
	for {
		for {
			el, ok := cur.Next()
			if !ok {
				break
			}
			if open != nil {
				done, err := open.Update(el)
				if err != nil {
					return nil, err
				}
				if done {
					vals, err := open.Emit(ctx)
					if err != nil {
						return nil, err
					}
					bare = append(bare, vals...)
					open = nil
				}
				continue
			}
			if fc, ok := el.(*FieldChar); ok {
				if fc.Marker() == MarkerBegin {
					open = fc
				}
				// a separate or end marker with nothing open is dropped
				continue
			}
			v, err := el.Serialize(ctx, cur)
			if err != nil {
				return nil, err
			}
			if v != nil {
				bare = append(bare, v)
			}
		}
		if err := cur.Err(); err != nil {
			return nil, err
		}
		if open == nil {
			break
		}
		if n.Name != paragraphTag {
			// fields opened inside a wrapper end with it
			ctx.warn(diag.UnclosedField, n, "Form-field begun inside %s was not closed within it", n.Prefixed())
			break
		}

		next, ok := bridgeTarget(ctx, n, siblings)
		if !ok {
			break
		}
		siblings.Next()
		if cur, err = ctx.Children(next.n, next.typ); err != nil {
			return nil, err
		}
	}

	return Merge(bare, ctx.Options), nil
}

var paragraphTag = node.W("p")

// bridgeTarget decides whether an open field continues into the next
// sibling. It records the unclosed-field warning when it does not.
func bridgeTarget(ctx *Context, n *node.Node, siblings *Cursor) (*Paragraph, bool) {
	if !ctx.Options.GreedyTextInput {
		ctx.warn(diag.UnclosedField, n,
			"Paragraph ended with an un-closed form-field; consider setting greedy-text-input")
		return nil, false
	}
	if siblings == nil {
		ctx.warn(diag.UnclosedField, n, "Paragraph ended with an un-closed form-field")
		return nil, false
	}
	next, ok := siblings.Peek()
	if !ok {
		if err := siblings.Err(); err == nil {
			ctx.warn(diag.UnclosedField, n, "Container content ended with an un-closed form-field")
		}
		return nil, false
	}
	p, ok := next.(*Paragraph)
	if !ok {
		ctx.warn(diag.UnclosedField, n,
			"Paragraph ended with an un-closed form-field followed by a %s element", next.Node().Prefixed())
		return nil, false
	}
	return p, true
}

// Paragraph is w:p.
type Paragraph struct{ container }

func (*Paragraph) Kind() string { return KindParagraph }

func (p *Paragraph) Serialize(ctx *Context, siblings *Cursor) (*simple.Value, error) {
	children, err := serializeContent(ctx, p.n, p.typ, siblings)
	if err != nil {
		return nil, err
	}
	if ctx.Options.RemoveLeadingWhiteSpace {
		children = trimEdge(children, true)
	}
	if ctx.Options.RemoveTrailingWhiteSpace {
		children = trimEdge(children, false)
	}

	out := simple.New(p.typ, children)
	if style := p.style(ctx); len(style) > 0 {
		out.Set("style", style)
	}
	return out, nil
}

// trimEdge trims the text at one end of children. A text left empty is
// dropped and the next one in is trimmed too.
func trimEdge(children []*simple.Value, leading bool) []*simple.Value {
	for len(children) > 0 {
		i := len(children) - 1
		if leading {
			i = 0
		}
		edge := children[i]
		s, ok := edge.String()
		if edge.Type != TypeText || !ok {
			break
		}
		if leading {
			s = strings.TrimLeftFunc(s, unicode.IsSpace)
		} else {
			s = strings.TrimRightFunc(s, unicode.IsSpace)
		}
		if s != "" {
			children[i] = simple.Text(TypeText, s)
			break
		}
		if leading {
			children = children[1:]
		} else {
			children = children[:i]
		}
	}
	return children
}

var (
	indLeft      = node.W("left")
	indStart     = node.W("start")
	indRight     = node.W("right")
	indEnd       = node.W("end")
	indFirstLine = node.W("firstLine")
	indHanging   = node.W("hanging")

	indentProps = []propSpec{
		attrProp("left", indLeft, intProp),
		attrProp("right", indRight, intProp),
		attrProp("firstLine", indFirstLine, intProp),
		attrProp("hanging", indHanging, intProp),
	}
	numPrProps = []propSpec{
		childProp("ilvl", node.W("ilvl"), intProp),
		childProp("numId", node.W("numId"), intProp),
	}
	styleNameProp = childProp("name", node.W("name"), stringProp)
)

func (p *Paragraph) style(ctx *Context) simple.Map {
	var style simple.Map
	var styles StyleResolver
	if ctx.Source != nil {
		styles = ctx.Source.Styles()
	}
	if styles == nil {
		return style
	}

	if ctx.Options.IncludeParagraphIndent {
		if ind := styles.Indentation(p.n); ind != nil {
			style = style.Set("indent", indentation(ind))
		}
	}
	if ctx.Options.IncludeParagraphNumbering {
		if num := styles.Numbering(p.n); num != nil {
			style = style.Set("numPr", &simple.Value{Type: "numPr", Bare: true, Props: snapshot(num, numPrProps)})
		}
	}
	if ctx.Options.IncludeParagraphStyle {
		if s := styles.ParagraphStyle(p.n); s != nil {
			if name, ok := styleNameProp.lookup(s); ok {
				style = style.Set("name", name)
			}
		}
	}
	return style
}

// indentation reads w:ind, accepting the w:start and w:end spellings.
func indentation(ind *node.Node) *simple.Value {
	v := &simple.Value{Type: "CT_Ind", Bare: true, Props: snapshot(ind, indentProps)}
	if _, ok := v.Get("left"); !ok {
		if val, ok := attrProp("left", indStart, intProp).lookup(ind); ok {
			v.Set("left", val)
		}
	}
	if _, ok := v.Get("right"); !ok {
		if val, ok := attrProp("right", indEnd, intProp).lookup(ind); ok {
			v.Set("right", val)
		}
	}
	return v
}

// contentWrapper is a paragraph-content container kept as its own node:
// hyperlinks, simple fields, custom XML and smart tags.
type contentWrapper struct {
	container
	kind  string
	props []simple.Prop
}

func (w *contentWrapper) Kind() string { return w.kind }

func (w *contentWrapper) Serialize(ctx *Context, siblings *Cursor) (*simple.Value, error) {
	children, err := serializeContent(ctx, w.n, w.typ, siblings)
	if err != nil {
		return nil, err
	}
	out := simple.New(w.typ, children)
	out.Props = append(out.Props, w.props...)
	return out, nil
}

// Hyperlink is a w:hyperlink kept as a wrapper. It also reports the
// relationship target when r:id resolves.
type Hyperlink struct{ contentWrapper }

var (
	rID            = node.Q("r:id")
	hyperlinkProps = []propSpec{
		attrProp("anchor", node.W("anchor"), stringProp),
		attrProp("docLocation", node.W("docLocation"), stringProp),
		attrProp("history", node.W("history"), boolProp),
		attrProp("id", rID, stringProp),
		attrProp("tgtFrame", node.W("tgtFrame"), stringProp),
		attrProp("tooltip", node.W("tooltip"), stringProp),
	}
)

func newHyperlink(_ *Context, n *node.Node) Element {
	return &Hyperlink{contentWrapper{container{n, "CT_Hyperlink"}, KindHyperlink, snapshot(n, hyperlinkProps)}}
}

func (h *Hyperlink) Serialize(ctx *Context, siblings *Cursor) (*simple.Value, error) {
	out, err := h.contentWrapper.Serialize(ctx, siblings)
	if err != nil {
		return nil, err
	}
	if id, ok := h.n.Attribute(rID); ok && ctx.Source != nil {
		if target, ok := ctx.Source.Target(id); ok {
			out.Set("target", target)
		}
	}
	return out, nil
}

var simpleFieldProps = []propSpec{
	attrProp("instr", node.W("instr"), stringProp),
	attrProp("fldLock", node.W("fldLock"), boolProp),
	attrProp("dirty", node.W("dirty"), boolProp),
}

func newSimpleField(_ *Context, n *node.Node) Element {
	return &contentWrapper{container{n, "CT_SimpleField"}, KindSimpleField, snapshot(n, simpleFieldProps)}
}

var taggedProps = []propSpec{
	attrProp("element", node.W("element"), stringProp),
	attrProp("uri", node.W("uri"), stringProp),
}

func newCustomXml(_ *Context, n *node.Node) Element {
	return &contentWrapper{container{n, "CT_CustomXmlRun"}, KindCustomXml, snapshot(n, taggedProps)}
}

func newSmartTag(_ *Context, n *node.Node) Element {
	return &contentWrapper{container{n, "CT_SmartTagRun"}, KindSmartTag, snapshot(n, taggedProps)}
}
