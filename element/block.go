package element

import (
	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/simple"
)

// container is shared by the kinds whose VALUE is the list of their
// children. typ doubles as the output TYPE and the definition name.
type container struct {
	n   *node.Node
	typ string
}

func (c container) Node() *node.Node { return c.n }

// serializeAll converts every child of c in order. Each child sees the
// cursor it came from, so it can look at the siblings that follow it.
func (c container) serializeAll(ctx *Context) ([]*simple.Value, error) {
	cur, err := ctx.Children(c.n, c.typ)
	if err != nil {
		return nil, err
	}
	out := []*simple.Value{}
	for {
		el, ok := cur.Next()
		if !ok {
			break
		}
		v, err := el.Serialize(ctx, cur)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		if ctx.Options.IgnoreEmptyParagraphs && v.Type == "CT_P" && len(v.Children()) == 0 {
			continue
		}
		out = append(out, v)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c container) serialize(ctx *Context) (*simple.Value, error) {
	children, err := c.serializeAll(ctx)
	if err != nil {
		return nil, err
	}
	return simple.New(c.typ, children), nil
}

// Document is w:document.
type Document struct{ container }

// NewDocument returns the element for a w:document node.
func NewDocument(n *node.Node) *Document {
	return &Document{container{n, "CT_Document"}}
}

func (*Document) Kind() string { return KindDocument }

func (d *Document) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	return d.serialize(ctx)
}

// Body is w:body.
type Body struct{ container }

func (*Body) Kind() string { return KindBody }

func (b *Body) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	return b.serialize(ctx)
}

// Table is w:tbl. The caption and description come from w:tblPr.
type Table struct{ container }

func (*Table) Kind() string { return KindTable }

var (
	tblPr          = node.W("tblPr")
	tblCaption     = node.W("tblCaption")
	tblDescription = node.W("tblDescription")
)

func (t *Table) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	out, err := t.serialize(ctx)
	if err != nil {
		return nil, err
	}
	pr := t.n.Child(tblPr)
	if c := pr.Child(tblCaption); c != nil {
		if val := c.AttrValue(valAttr); val != "" || !ctx.Options.IgnoreEmptyTableCaption {
			out.Set("tblCaption", val)
		}
	}
	if d := pr.Child(tblDescription); d != nil {
		if val := d.AttrValue(valAttr); val != "" || !ctx.Options.IgnoreEmptyTableDescription {
			out.Set("tblDescription", val)
		}
	}
	return out, nil
}

// Row is w:tr.
type Row struct{ container }

func (*Row) Kind() string { return KindRow }

func (r *Row) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	return r.serialize(ctx)
}

// Cell is w:tc.
type Cell struct{ container }

func (*Cell) Kind() string { return KindCell }

var (
	tcPr     = node.W("tcPr")
	gridSpan = node.W("gridSpan")
	vMerge   = node.W("vMerge")
)

func (c *Cell) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	out, err := c.serialize(ctx)
	if err != nil {
		return nil, err
	}
	if !ctx.Options.IncludeCellMerge {
		return out, nil
	}
	pr := c.n.Child(tcPr)
	if span, ok := childProp("gridSpan", gridSpan, intProp).lookup(pr); ok {
		out.Set("gridSpan", span)
	}
	if m := pr.Child(vMerge); m != nil {
		// an empty w:val continues the merge above
		val := m.AttrValue(valAttr)
		if val == "" {
			val = "continue"
		}
		out.Set("vMerge", val)
	}
	return out, nil
}
