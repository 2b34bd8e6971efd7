package simple

import "errors"

// Stop ends a Walk early without reporting an error.
var Stop = errors.New("simple: stop walk")

// VisitFunc is called for each visited node. parent is the node whose
// VALUE holds v, and index is v's position in that list, or -1 when v is
// the parent's only VALUE or the root.
type VisitFunc func(v, parent *Value, index int) error

type walkConfig struct {
	typ       string
	noDescend map[string]bool
}

// WalkOption narrows a Walk.
type WalkOption func(*walkConfig)

// OfType visits only nodes of the given TYPE. Traversal still passes
// through nodes of other types.
func OfType(typ string) WalkOption {
	return func(c *walkConfig) {
		c.typ = typ
	}
}

// NoDescend visits nodes of the given types but not their children.
func NoDescend(types ...string) WalkOption {
	return func(c *walkConfig) {
		for _, t := range types {
			c.noDescend[t] = true
		}
	}
}

// Walk visits root and its descendants in document order, depth first.
// Only VALUE is traversed. Returning Stop from fn ends the walk and Walk
// returns nil; any other error ends the walk and is returned.
func Walk(root *Value, fn VisitFunc, opts ...WalkOption) error {
	cfg := walkConfig{noDescend: make(map[string]bool)}
	for _, opt := range opts {
		opt(&cfg)
	}
	err := walk(root, nil, -1, fn, &cfg)
	if errors.Is(err, Stop) {
		return nil
	}
	return err
}

func walk(v, parent *Value, index int, fn VisitFunc, cfg *walkConfig) error {
	if v == nil {
		return nil
	}
	if cfg.typ == "" || v.Type == cfg.typ {
		if err := fn(v, parent, index); err != nil {
			return err
		}
	}
	if cfg.noDescend[v.Type] {
		return nil
	}
	switch t := v.Value.(type) {
	case *Value:
		return walk(t, v, -1, fn, cfg)
	case []*Value:
		for i, c := range t {
			if err := walk(c, v, i, fn, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find returns the first node of the given type, or nil.
func Find(root *Value, typ string) *Value {
	var found *Value
	Walk(root, func(v, _ *Value, _ int) error {
		found = v
		return Stop
	}, OfType(typ))
	return found
}

// Relabel replaces every TYPE found in names, in place. It descends into
// VALUE and into properties holding nodes or Maps.
func Relabel(v *Value, names map[string]string) {
	if v == nil {
		return
	}
	if to, ok := names[v.Type]; ok {
		v.Type = to
	}
	relabelAny(v.Value, names)
	for _, p := range v.Props {
		relabelAny(p.Value, names)
	}
}

func relabelAny(x any, names map[string]string) {
	switch t := x.(type) {
	case *Value:
		Relabel(t, names)
	case []*Value:
		for _, c := range t {
			Relabel(c, names)
		}
	case Map:
		for _, p := range t {
			relabelAny(p.Value, names)
		}
	}
}
