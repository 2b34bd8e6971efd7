package element

import (
	"encoding/xml"
	"strconv"

	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/simple"
)

type propType int

const (
	stringProp propType = iota
	boolProp
	intProp
)

// propSpec describes one scalar property. With child set, the value is the
// w:val attribute of the named child element; otherwise it is the named
// attribute of the node itself.
type propSpec struct {
	key   string
	name  xml.Name
	typ   propType
	child bool
}

func attrProp(key string, name xml.Name, typ propType) propSpec {
	return propSpec{key: key, name: name, typ: typ}
}

func childProp(key string, name xml.Name, typ propType) propSpec {
	return propSpec{key: key, name: name, typ: typ, child: true}
}

var valAttr = node.W("val")

// lookup returns the property's raw value and whether it is present.
func (s propSpec) lookup(n *node.Node) (any, bool) {
	var raw string
	if s.child {
		c := n.Child(s.name)
		if c == nil {
			return nil, false
		}
		v, ok := c.Attribute(valAttr)
		if !ok {
			if s.typ == boolProp {
				// <w:checked/> means on
				return true, true
			}
			return nil, false
		}
		raw = v
	} else {
		v, ok := n.Attribute(s.name)
		if !ok {
			return nil, false
		}
		raw = v
	}

	switch s.typ {
	case boolProp:
		return parseOnOff(raw), true
	case intProp:
		if i, err := strconv.Atoi(raw); err == nil {
			return i, true
		}
	}
	return raw, true
}

// snapshot reads every present property of n, in spec order.
func snapshot(n *node.Node, specs []propSpec) []simple.Prop {
	var out []simple.Prop
	for _, s := range specs {
		if v, ok := s.lookup(n); ok {
			out = append(out, simple.Prop{Key: s.key, Value: v})
		}
	}
	return out
}

func propValue(props []simple.Prop, key string) (any, bool) {
	return simple.Map(props).Get(key)
}

func parseOnOff(s string) bool {
	switch s {
	case "false", "0", "off":
		return false
	}
	return true
}
