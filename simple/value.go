package simple

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// Prop is a named property.
type Prop struct {
	Key   string
	Value any
}

// Map is an ordered string-keyed mapping.
type Map []Prop

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key, or appends it.
func (m Map) Set(key string, v any) Map {
	for i := range m {
		if m[i].Key == key {
			m[i].Value = v
			return m
		}
	}
	return append(m, Prop{Key: key, Value: v})
}

func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m Map) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(m))
	for _, p := range m {
		out = append(out, yaml.MapItem{Key: p.Key, Value: p.Value})
	}
	return out, nil
}

// Value is one node of the output tree.
type Value struct {
	Type  string
	Value any
	Props []Prop
	// Bare nodes carry no VALUE key.
	Bare bool
}

// New returns a node with a VALUE.
func New(typ string, value any) *Value {
	return &Value{Type: typ, Value: value}
}

// NewBare returns a node without a VALUE.
func NewBare(typ string) *Value {
	return &Value{Type: typ, Bare: true}
}

// Text returns a text node.
func Text(typ, s string) *Value {
	return &Value{Type: typ, Value: s}
}

// Set adds or replaces a property and returns v.
func (v *Value) Set(key string, value any) *Value {
	v.Props = Map(v.Props).Set(key, value)
	return v
}

// Get returns a property.
func (v *Value) Get(key string) (any, bool) {
	return Map(v.Props).Get(key)
}

// Delete removes a property.
func (v *Value) Delete(key string) {
	for i, p := range v.Props {
		if p.Key == key {
			v.Props = append(v.Props[:i:i], v.Props[i+1:]...)
			return
		}
	}
}

// String returns VALUE when it is a string.
func (v *Value) String() (string, bool) {
	s, ok := v.Value.(string)
	return s, ok
}

// Children returns VALUE when it is a list of nodes.
func (v *Value) Children() []*Value {
	c, _ := v.Value.([]*Value)
	return c
}

// Child returns VALUE when it is a single node.
func (v *Value) Child() *Value {
	c, _ := v.Value.(*Value)
	return c
}

// Clone returns a deep copy of v. Scalars and Maps of scalars are shared.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := &Value{Type: v.Type, Bare: v.Bare, Value: cloneAny(v.Value)}
	if v.Props != nil {
		out.Props = make([]Prop, len(v.Props))
		for i, p := range v.Props {
			out.Props[i] = Prop{Key: p.Key, Value: cloneAny(p.Value)}
		}
	}
	return out
}

func cloneAny(x any) any {
	switch t := x.(type) {
	case *Value:
		return t.Clone()
	case []*Value:
		out := make([]*Value, len(t))
		for i, c := range t {
			out[i] = c.Clone()
		}
		return out
	case Map:
		out := make(Map, len(t))
		for i, p := range t {
			out[i] = Prop{Key: p.Key, Value: cloneAny(p.Value)}
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return x
}

// Env returns the node as a generic map: TYPE, VALUE and every property.
// Nested nodes are converted too.
func (v *Value) Env() map[string]any {
	m := map[string]any{"TYPE": v.Type}
	if !v.Bare {
		m["VALUE"] = envAny(v.Value)
	}
	for _, p := range v.Props {
		m[p.Key] = envAny(p.Value)
	}
	return m
}

func envAny(x any) any {
	switch t := x.(type) {
	case *Value:
		return t.Env()
	case []*Value:
		out := make([]any, len(t))
		for i, c := range t {
			out[i] = c.Env()
		}
		return out
	case Map:
		out := make(map[string]any, len(t))
		for _, p := range t {
			out[p.Key] = envAny(p.Value)
		}
		return out
	}
	return x
}

func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, "TYPE", v.Type); err != nil {
		return nil, err
	}
	if !v.Bare {
		buf.WriteByte(',')
		if err := writeMember(&buf, "VALUE", v.Value); err != nil {
			return nil, err
		}
	}
	for _, p := range v.Props {
		buf.WriteByte(',')
		if err := writeMember(&buf, p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v *Value) MarshalYAML() (any, error) {
	out := yaml.MapSlice{{Key: "TYPE", Value: v.Type}}
	if !v.Bare {
		out = append(out, yaml.MapItem{Key: "VALUE", Value: v.Value})
	}
	for _, p := range v.Props {
		out = append(out, yaml.MapItem{Key: p.Key, Value: p.Value})
	}
	return out, nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	if err := encode(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return encode(buf, value)
}

// encode writes x without HTML escaping, so document text keeps its
// ampersands and angle brackets.
func encode(buf *bytes.Buffer, x any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(x); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// JSON encodes v, indented when indent is not empty.
func JSON(v *Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// YAML encodes v as YAML.
func YAML(v *Value) ([]byte, error) {
	return yaml.Marshal(v)
}
