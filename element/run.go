package element

import (
	"strconv"

	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/simple"
)

// Output types of the run-level kinds.
const (
	TypeText      = "CT_Text"
	TypeEmpty     = "CT_Empty"
	TypeSymbol    = "SymbolChar"
	TypeInstrText = "instrText"
)

// Text is w:t.
type Text struct{ n *node.Node }

func (*Text) Kind() string       { return KindText }
func (t *Text) Node() *node.Node { return t.n }

func (t *Text) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	return simple.Text(TypeText, normalize(t.n.Text, ctx.Options)), nil
}

// Symbol is w:sym.
type Symbol struct {
	n    *node.Node
	char string
	font string
}

func newSymbol(_ *Context, n *node.Node) Element {
	char, _ := n.Attribute(node.W("char"))
	font, _ := n.Attribute(node.W("font"))
	return &Symbol{n: n, char: char, font: font}
}

func (*Symbol) Kind() string       { return KindSymbol }
func (s *Symbol) Node() *node.Node { return s.n }

// Rune decodes the symbol character. A four-digit hex code becomes its
// code point; anything else is returned as written.
func (s *Symbol) Rune() string {
	if len(s.char) == 4 {
		if cp, err := strconv.ParseUint(s.char, 16, 32); err == nil {
			return string(rune(cp))
		}
	}
	return s.char
}

func (s *Symbol) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	if ctx.Options.SymbolAsText {
		return simple.Text(TypeText, s.Rune()), nil
	}
	return simple.New(TypeSymbol, simple.Map{{Key: "char", Value: s.char}, {Key: "font", Value: s.font}}), nil
}

// simpleText lists the single-character run kinds: output type and
// literal text.
var simpleText = map[string]struct{ typ, text string }{
	"br":            {"Break", "\r"},
	"cr":            {"CarriageReturn", "\r"},
	"tab":           {"TabChar", "\t"},
	"ptab":          {"PositionalTab", "\t"},
	"noBreakHyphen": {"NoBreakHyphen", "-"},
	"softHyphen":    {"SoftHyphen", "-"},
}

// SimpleText is a break, carriage return, tab or hyphen.
type SimpleText struct {
	n         *node.Node
	typ, text string
}

func newSimpleText(_ *Context, n *node.Node) Element {
	st := simpleText[n.Name.Local]
	if st.typ == "" {
		st.typ = n.Name.Local
	}
	return &SimpleText{n: n, typ: st.typ, text: st.text}
}

func (*SimpleText) Kind() string       { return KindSimpleText }
func (s *SimpleText) Node() *node.Node { return s.n }

func (s *SimpleText) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	if ctx.Options.SpecialCharactersAsText {
		return simple.Text(TypeText, s.text), nil
	}
	return simple.NewBare(s.typ), nil
}

// InstrText is a field code, w:instrText.
type InstrText struct{ n *node.Node }

func (*InstrText) Kind() string       { return KindInstrText }
func (t *InstrText) Node() *node.Node { return t.n }

func (t *InstrText) Serialize(*Context, *Cursor) (*simple.Value, error) {
	return simple.Text(TypeInstrText, t.n.Text), nil
}

// Empty stands for content with no text model: drawings, math, dates,
// note references.
type Empty struct{ n *node.Node }

func (*Empty) Kind() string       { return KindEmpty }
func (e *Empty) Node() *node.Node { return e.n }

func (e *Empty) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	label := "[" + e.n.Prefixed() + "]"
	if ctx.Options.EmptyAsText {
		return simple.Text(TypeText, label), nil
	}
	return simple.Text(TypeEmpty, label), nil
}
