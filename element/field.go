package element

import (
	"fmt"

	"github.com/blwarren/simplifydocx/diag"
	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/simple"
)

// Marker is the w:fldCharType of a field character.
type Marker string

const (
	MarkerBegin    Marker = "begin"
	MarkerSeparate Marker = "separate"
	MarkerEnd      Marker = "end"
)

type fieldState int

const (
	collectingCodes fieldState = iota
	collectingResults
	complete
)

var fieldCharProps = []propSpec{
	attrProp("fldCharType", node.W("fldCharType"), stringProp),
	attrProp("fldLock", node.W("fldLock"), boolProp),
	attrProp("dirty", node.W("dirty"), boolProp),
}

// FieldChar is a w:fldChar. A begin marker collects the elements up to
// its end marker: field codes first, then, after the separate marker,
// field results.
type FieldChar struct {
	n      *node.Node
	marker Marker
	kind   string
	form   *formData
	props  []simple.Prop

	state   fieldState
	codes   []Element
	results []Element
}

func newFieldChar(ctx *Context, n *node.Node) Element {
	t, _ := n.Attribute(node.W("fldCharType"))
	f := &FieldChar{n: n, marker: Marker(t), props: snapshot(n, fieldCharProps)}
	f.form = newFormData(n.Child(ffDataTag))
	f.kind = f.form.kind()
	if f.form != nil && f.kind == FieldGeneric {
		ctx.warn(diag.GenericFieldData, n, "fldChar has unexpected ffData content: treating as %s", FieldGeneric)
	}
	return f
}

func (*FieldChar) Kind() string       { return KindFieldChar }
func (f *FieldChar) Node() *node.Node { return f.n }

// Marker returns the field character's type.
func (f *FieldChar) Marker() Marker { return f.marker }

// FieldKind returns Checkbox, DropDown, TextInput or generic-field.
func (f *FieldChar) FieldKind() string { return f.kind }

// Complete reports whether the end marker has been seen.
func (f *FieldChar) Complete() bool { return f.state == complete }

// Update feeds the next element to an open field and reports whether the
// field is now complete.
func (f *FieldChar) Update(el Element) (bool, error) {
	if f.state == complete {
		return false, ErrFieldComplete
	}
	if fc, ok := el.(*FieldChar); ok {
		switch fc.marker {
		case MarkerBegin:
			return false, &UnhandledNestingError{Open: f.kind}
		case MarkerSeparate:
			f.state = collectingResults
			return false, nil
		case MarkerEnd:
			f.state = complete
			return true, nil
		}
	}
	if f.state == collectingResults {
		f.results = append(f.results, el)
	} else {
		f.codes = append(f.codes, el)
	}
	return false, nil
}

// Emit returns the values a completed field contributes to its
// paragraph. A generic field is spliced in as its results when
// flatten-generic-field is set.
func (f *FieldChar) Emit(ctx *Context) ([]*simple.Value, error) {
	if f.kind == FieldGeneric && ctx.Options.FlattenGenericField {
		return f.mergedResults(ctx)
	}
	v, err := f.Serialize(ctx, nil)
	if err != nil {
		return nil, err
	}
	return []*simple.Value{v}, nil
}

func serializeEach(ctx *Context, els []Element) ([]*simple.Value, error) {
	out := []*simple.Value{}
	for _, el := range els {
		v, err := el.Serialize(ctx, nil)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *FieldChar) mergedResults(ctx *Context) ([]*simple.Value, error) {
	vals, err := serializeEach(ctx, f.results)
	if err != nil {
		return nil, err
	}
	return Merge(vals, ctx.Options), nil
}

// Serialize converts the field. Checkboxes, dropdowns and text inputs
// have three forms: text, simplified or full, chosen in that order by the
// as-text and simplify options.
func (f *FieldChar) Serialize(ctx *Context, _ *Cursor) (*simple.Value, error) {
	results, err := f.mergedResults(ctx)
	if err != nil {
		return nil, err
	}
	opts := ctx.Options

	var (
		value    any
		asText   bool
		simplify bool
		copied   []simple.Prop
	)
	switch f.kind {
	case FieldCheckbox:
		checked, ok := propValue(f.form.checkBox, "checked")
		if !ok && opts.UseCheckboxDefault {
			checked, ok = propValue(f.form.checkBox, "default")
		}
		if ok {
			value = checked
		}
		asText, simplify = opts.CheckboxAsText, opts.SimplifyCheckbox
		copied = pick(f.form.checkBox, "default")

	case FieldDropDown:
		entries := f.form.options(opts.TrimDropdownOptions)
		result, _ := propValue(f.form.ddList, "result")
		def, _ := propValue(f.form.ddList, "default")
		if s, ok := entryAt(entries, result); ok {
			value = s
		} else if s, ok := entryAt(entries, def); ok {
			value = s
		} else if len(entries) > 0 {
			value = entries[0]
		}
		asText, simplify = opts.DropdownAsText, opts.SimplifyDropdown
		copied = append(pick(f.form.ddList, "default", "result"), simple.Prop{Key: "options", Value: entries})

	case FieldTextInput:
		asText, simplify = opts.TextInputAsText, opts.SimplifyTextInput
		if asText || simplify {
			if len(results) > 1 {
				ctx.warn(diag.TextInputCollapsed, f.n,
					"text input has %d elements; ignoring all but the first", len(results))
			}
			value = ""
			if len(results) > 0 {
				value = results[0].Value
			}
		} else if len(results) == 1 {
			value = results[0].Value
		} else {
			value = results
		}
		copied = pick(f.form.textInput, "default")

	default:
		value = results
	}

	if asText {
		return simple.Text(TypeText, fmt.Sprintf("[%s:%s]", f.kind, textOf(value))), nil
	}

	out := simple.New(f.kind, value)
	if simplify {
		for _, p := range f.props {
			if p.Key != "fldCharType" {
				out.Set(p.Key, p.Value)
			}
		}
		for _, p := range copied {
			out.Set(p.Key, p.Value)
		}
		return out, nil
	}

	out.Props = append(out.Props, f.props...)
	if f.form != nil {
		out.Set("ffData", f.form.value())
	}
	codes, err := serializeEach(ctx, f.codes)
	if err != nil {
		return nil, err
	}
	out.Set("fieldCodes", codes)
	out.Set("fieldResults", results)
	return out, nil
}

// pick returns the named properties that are present.
func pick(props []simple.Prop, keys ...string) []simple.Prop {
	var out []simple.Prop
	for _, k := range keys {
		if v, ok := propValue(props, k); ok {
			out = append(out, simple.Prop{Key: k, Value: v})
		}
	}
	return out
}

// textOf renders a resolved value for the as-text form.
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *simple.Value:
		if s, ok := t.String(); ok {
			return s
		}
		return ""
	}
	return fmt.Sprint(v)
}
