package element

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/blwarren/simplifydocx/diag"
	"github.com/blwarren/simplifydocx/dispatch"
	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/options"
	"github.com/blwarren/simplifydocx/simple"
)

var (
	ErrUnknownKind      = errors.New("element: no constructor for kind")
	ErrFieldComplete    = errors.New("element: update of a completed field")
	ErrUnhandledNesting = errors.New("element: nested field characters are not supported")
)

// UnhandledNestingError reports a field begin marker met while another
// field is still open.
type UnhandledNestingError struct {
	Open string // kind of the open field
}

func (e *UnhandledNestingError) Error() string {
	return fmt.Sprintf("element: field begins inside an open %s field", e.Open)
}

func (e *UnhandledNestingError) Unwrap() error {
	return ErrUnhandledNesting
}

// Source is the document a conversion reads from.
type Source interface {
	// Root returns the part's root element, normally w:document.
	Root() *node.Node
	// Related resolves a relationship id to another part.
	Related(id string) (Source, error)
	// Target returns the raw target of a relationship.
	Target(id string) (string, bool)
	Styles() StyleResolver
}

// StyleResolver answers style questions about a paragraph.
type StyleResolver interface {
	// Indentation returns the w:ind node that applies to p, or nil.
	Indentation(p *node.Node) *node.Node
	// Numbering returns the w:numPr node that applies to p, or nil.
	Numbering(p *node.Node) *node.Node
	// ParagraphStyle returns the w:style node p references, or nil.
	ParagraphStyle(p *node.Node) *node.Node
}

// Element is one typed node of the document.
type Element interface {
	Kind() string
	Node() *node.Node
	// Serialize converts the element. siblings, which may be nil, yields
	// the elements that follow this one.
	Serialize(ctx *Context, siblings *Cursor) (*simple.Value, error)
}

// Context carries everything a conversion shares.
type Context struct {
	Source  Source
	Options options.Options
	Defs    *dispatch.Registry
	Diag    diag.Sink
	Log     *slog.Logger
	// Trace logs every walked tag at debug level.
	Trace bool

	// open lists the sources being converted, outermost first.
	open []Source
}

// MaxReferenceDepth bounds how many referenced parts may be open at once.
const MaxReferenceDepth = 16

// NewContext builds a context with a registry configured for opts.
func NewContext(src Source, opts options.Options, sink diag.Sink) (*Context, error) {
	defs, err := NewRegistry(opts)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = diag.Discard
	}
	return &Context{
		Source:  src,
		Options: opts,
		Defs:    defs,
		Diag:    sink,
		Log:     slog.New(discardHandler{}),
	}, nil
}

// WithSource returns a copy of c reading from src. The current source
// stays open beneath it.
func (c *Context) WithSource(src Source) *Context {
	cp := *c
	cp.Source = src
	cp.open = append(c.openSources(), src)
	return &cp
}

func (c *Context) openSources() []Source {
	out := make([]Source, 0, len(c.open)+1)
	if len(c.open) == 0 && c.Source != nil {
		out = append(out, c.Source)
	}
	return append(out, c.open...)
}

// isOpen reports whether src is already being converted.
func (c *Context) isOpen(src Source) bool {
	for _, s := range c.openSources() {
		if sameSource(s, src) {
			return true
		}
	}
	return false
}

func sameSource(a, b Source) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func (c *Context) warn(kind diag.Kind, n *node.Node, format string, args ...any) {
	tag := ""
	if n != nil {
		tag = n.Prefixed()
	}
	c.Diag.Add(diag.Warning{Kind: kind, Tag: tag, Message: fmt.Sprintf(format, args...)})
}

// Children returns a cursor over the elements yielded by walking n's
// children under the named definition.
func (c *Context) Children(n *node.Node, definition string) (*Cursor, error) {
	opts := []dispatch.WalkOption{dispatch.WithSink(c.Diag)}
	if c.Trace && c.Log != nil {
		opts = append(opts, dispatch.WithTrace(c.Log, definition+": "))
	}
	w, err := c.Defs.Walk(n, definition, opts...)
	if err != nil {
		return nil, err
	}
	return &Cursor{ctx: c, walker: w}, nil
}

// Cursor yields elements lazily and can look one element ahead.
type Cursor struct {
	ctx    *Context
	walker *dispatch.Walker
	peeked Element
	err    error
}

// Next returns the next element, or false at the end or after an error.
func (c *Cursor) Next() (Element, bool) {
	if c.peeked != nil {
		el := c.peeked
		c.peeked = nil
		return el, true
	}
	return c.advance()
}

// Peek returns the next element without consuming it.
func (c *Cursor) Peek() (Element, bool) {
	if c.peeked != nil {
		return c.peeked, true
	}
	el, ok := c.advance()
	if ok {
		c.peeked = el
	}
	return el, ok
}

// Err reports what stopped the cursor early.
func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.walker.Err()
}

func (c *Cursor) advance() (Element, bool) {
	if c.err != nil {
		return nil, false
	}
	it, ok := c.walker.Next()
	if !ok {
		return nil, false
	}
	el, err := Construct(c.ctx, it.Kind, it.Node)
	if err != nil {
		c.err = err
		return nil, false
	}
	return el, true
}

type constructor func(ctx *Context, n *node.Node) Element

// Element kinds named in dispatch definitions.
const (
	KindDocument    = "document"
	KindBody        = "body"
	KindParagraph   = "paragraph"
	KindHyperlink   = "hyperlink"
	KindSimpleField = "simple-field"
	KindCustomXml   = "custom-xml"
	KindSmartTag    = "smart-tag"
	KindText        = "text"
	KindSymbol      = "symbol"
	KindSimpleText  = "simple-text"
	KindFieldChar   = "field-char"
	KindInstrText   = "instr-text"
	KindEmpty       = "empty"
	KindTable       = "table"
	KindRow         = "row"
	KindCell        = "cell"
	KindAltChunk    = "alt-chunk"
	KindSubDoc      = "sub-doc"
	KindContentPart = "content-part"
)

var constructors map[string]constructor

func init() {
	constructors = map[string]constructor{
		KindDocument:    func(_ *Context, n *node.Node) Element { return &Document{container{n, "CT_Document"}} },
		KindBody:        func(_ *Context, n *node.Node) Element { return &Body{container{n, "CT_Body"}} },
		KindParagraph:   func(_ *Context, n *node.Node) Element { return &Paragraph{container{n, "CT_P"}} },
		KindHyperlink:   newHyperlink,
		KindSimpleField: newSimpleField,
		KindCustomXml:   newCustomXml,
		KindSmartTag:    newSmartTag,
		KindText:        func(_ *Context, n *node.Node) Element { return &Text{n} },
		KindSymbol:      newSymbol,
		KindSimpleText:  newSimpleText,
		KindFieldChar:   newFieldChar,
		KindInstrText:   func(_ *Context, n *node.Node) Element { return &InstrText{n} },
		KindEmpty:       func(_ *Context, n *node.Node) Element { return &Empty{n} },
		KindTable:       func(_ *Context, n *node.Node) Element { return &Table{container{n, "CT_Tbl"}} },
		KindRow:         func(_ *Context, n *node.Node) Element { return &Row{container{n, "CT_Row"}} },
		KindCell:        func(_ *Context, n *node.Node) Element { return &Cell{container{n, "CT_Tc"}} },
		KindAltChunk:    func(_ *Context, n *node.Node) Element { return &Reference{n, "CT_AltChunk"} },
		KindSubDoc:      func(_ *Context, n *node.Node) Element { return &Reference{n, "subDoc"} },
		KindContentPart: func(_ *Context, n *node.Node) Element { return &Reference{n, "contentPart"} },
	}
}

// Construct builds the element of the given kind over n.
func Construct(ctx *Context, kind string, n *node.Node) (Element, error) {
	c, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q (tag %s)", ErrUnknownKind, kind, n.Prefixed())
	}
	return c(ctx, n), nil
}

// KnownKind reports whether kind has a constructor.
func KnownKind(kind string) bool {
	_, ok := constructors[kind]
	return ok
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
