package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/blwarren/simplifydocx/diag"
	"github.com/blwarren/simplifydocx/node"
)

// Item is one yielded node and the element kind it maps to.
type Item struct {
	Node *node.Node
	Kind string
}

// WalkOption configures a Walker.
type WalkOption func(*Walker)

// WithSink sends recoverable conditions to s.
func WithSink(s diag.Sink) WalkOption {
	return func(w *Walker) {
		w.sink = s
	}
}

// WithTrace logs every visited tag that is not ignored at debug level.
// Each nesting level indents the prefix by two spaces.
func WithTrace(log *slog.Logger, prefix string) WalkOption {
	return func(w *Walker) {
		w.trace = log
		w.prefix = prefix
	}
}

type frame struct {
	def    *Resolved
	cur    *node.Node
	prefix string
}

// Walker iterates the children of a node under a definition, descending
// into nested definitions as it goes. It yields lazily and never looks at
// the children of a node that is yielded but not nested.
type Walker struct {
	reg    *Registry
	sink   diag.Sink
	trace  *slog.Logger
	prefix string

	stack  []frame
	peeked *Item
	err    error
}

// Walk returns a walker over n's children under the named definition.
// The registry is resolved first if needed.
func (r *Registry) Walk(n *node.Node, name string, opts ...WalkOption) (*Walker, error) {
	if err := r.ResolveAll(); err != nil {
		return nil, err
	}
	w := &Walker{reg: r, sink: diag.Discard}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.push(n, name, w.prefix); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Walker) push(n *node.Node, name, prefix string) error {
	def, ok := w.reg.Resolved(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDefinition, name)
	}
	w.stack = append(w.stack, frame{def: def, cur: n.FirstChild(), prefix: prefix})
	return nil
}

// Next returns the next yielded item, or false when the walk is over or
// has failed. Check Err after Next returns false.
func (w *Walker) Next() (Item, bool) {
	if w.peeked != nil {
		it := *w.peeked
		w.peeked = nil
		return it, true
	}
	return w.advance()
}

// Peek returns the next item without consuming it.
func (w *Walker) Peek() (Item, bool) {
	if w.peeked != nil {
		return *w.peeked, true
	}
	it, ok := w.advance()
	if !ok {
		return Item{}, false
	}
	w.peeked = &it
	return it, true
}

// Err returns the error that stopped the walk, if any.
func (w *Walker) Err() error {
	return w.err
}

// Collect drains the walker.
func (w *Walker) Collect() ([]Item, error) {
	var items []Item
	for {
		it, ok := w.Next()
		if !ok {
			return items, w.err
		}
		items = append(items, it)
	}
}

func (w *Walker) advance() (Item, bool) {
	if w.err != nil {
		return Item{}, false
	}
	for len(w.stack) > 0 {
		top := len(w.stack) - 1
		f := &w.stack[top]
		cur := f.cur
		if cur == nil {
			w.stack = w.stack[:top]
			continue
		}
		def := f.def
		prefix := f.prefix
		tag := cur.Name
		prefixed := node.Prefixed(tag)

		if w.trace != nil && !def.Ignores(tag) {
			w.trace.Debug(prefix+prefixed, "definition", def.Name)
		}

		if kind, ok := def.Yields(tag); ok {
			f.cur = cur.Next()
			if target, nested := def.Nests(tag); nested {
				if err := w.push(cur, target, prefix+"  "); err != nil {
					w.err = err
				}
			}
			return Item{Node: cur, Kind: kind}, true
		}

		if target, ok := def.Nests(tag); ok {
			f.cur = cur.Next()
			if err := w.push(cur, target, prefix+"  "); err != nil {
				w.err = err
				return Item{}, false
			}
			continue
		}

		if msg, ok := def.Warns(tag); ok {
			w.sink.Add(diag.Warning{
				Kind:    diag.IgnoredTag,
				Message: msg,
				Tag:     prefixed,
			})
			f.cur = cur.Next()
			continue
		}

		if def.Ignores(tag) {
			f.cur = cur.Next()
			continue
		}

		if skip, ok := def.Skips(tag); ok {
			end := rangeEnd(cur, skip)
			if end == nil {
				// An open range consumes every remaining sibling.
				w.stack = w.stack[:top]
				continue
			}
			f.cur = end.Next()
			continue
		}

		w.sink.Add(diag.Warning{
			Kind:    diag.UnexpectedTag,
			Message: fmt.Sprintf("Skipping unexpected tag under %s", def.Name),
			Tag:     prefixed,
		})
		f.cur = cur.Next()
	}
	return Item{}, false
}

// rangeEnd returns the sibling closing the range start opens, or nil.
func rangeEnd(start *node.Node, skip Skip) *node.Node {
	id := start.AttrValue(skip.IDAttr)
	for cur := start.Next(); cur != nil; cur = cur.Next() {
		if cur.Name == skip.End && cur.AttrValue(skip.IDAttr) == id {
			return cur
		}
	}
	return nil
}
