package element

import (
	"strings"

	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/simple"
)

// Field kinds, named after the w:ffData child that selects them.
const (
	FieldCheckbox  = "Checkbox"
	FieldDropDown  = "DropDown"
	FieldTextInput = "TextInput"
	FieldGeneric   = "generic-field"
)

var (
	ffDataTag    = node.W("ffData")
	checkBoxTag  = node.W("checkBox")
	ddListTag    = node.W("ddList")
	textInputTag = node.W("textInput")
	listEntryTag = node.W("listEntry")

	ffDataProps = []propSpec{
		childProp("name", node.W("name"), stringProp),
		childProp("label", node.W("label"), intProp),
		childProp("tabIndex", node.W("tabIndex"), intProp),
		childProp("enabled", node.W("enabled"), boolProp),
		childProp("calcOnExit", node.W("calcOnExit"), boolProp),
		childProp("entryMacro", node.W("entryMacro"), stringProp),
		childProp("exitMacro", node.W("exitMacro"), stringProp),
		childProp("helpText", node.W("helpText"), stringProp),
		childProp("statusText", node.W("statusText"), stringProp),
	}
	checkBoxProps = []propSpec{
		childProp("default", node.W("default"), boolProp),
		childProp("checked", node.W("checked"), boolProp),
	}
	ddListProps = []propSpec{
		childProp("default", node.W("default"), intProp),
		childProp("result", node.W("result"), intProp),
	}
	textInputProps = []propSpec{
		childProp("default", node.W("default"), stringProp),
		childProp("type", node.W("type"), stringProp),
		childProp("format", node.W("format"), stringProp),
	}
)

// formData is the parsed w:ffData of a field begin marker.
type formData struct {
	n     *node.Node
	props []simple.Prop

	checkBox  []simple.Prop
	ddList    []simple.Prop
	entries   []string
	textInput []simple.Prop
}

func newFormData(n *node.Node) *formData {
	if n == nil {
		return nil
	}
	fd := &formData{n: n, props: snapshot(n, ffDataProps)}
	if c := n.Child(checkBoxTag); c != nil {
		fd.checkBox = snapshot(c, checkBoxProps)
	}
	if c := n.Child(ddListTag); c != nil {
		fd.ddList = snapshot(c, ddListProps)
		for _, e := range c.ChildrenNamed(listEntryTag) {
			v, _ := e.Attribute(valAttr)
			fd.entries = append(fd.entries, v)
		}
	}
	if c := n.Child(textInputTag); c != nil {
		fd.textInput = snapshot(c, textInputProps)
	}
	return fd
}

// kind picks the field kind. The first of checkbox, dropdown and text
// input present wins.
func (fd *formData) kind() string {
	switch {
	case fd == nil:
		return FieldGeneric
	case fd.n.Child(checkBoxTag) != nil:
		return FieldCheckbox
	case fd.n.Child(ddListTag) != nil:
		return FieldDropDown
	case fd.n.Child(textInputTag) != nil:
		return FieldTextInput
	}
	return FieldGeneric
}

// options returns the dropdown entries, trimmed when trim is set. The
// stored entries are left alone.
func (fd *formData) options(trim bool) []string {
	out := make([]string, len(fd.entries))
	for i, e := range fd.entries {
		if trim {
			e = strings.TrimSpace(e)
		}
		out[i] = e
	}
	return out
}

// value encodes the ffData node.
func (fd *formData) value() *simple.Value {
	out := &simple.Value{Type: "CT_FFData", Bare: true, Props: append([]simple.Prop(nil), fd.props...)}
	if fd.n.Child(checkBoxTag) != nil {
		out.Set("checkBox", &simple.Value{Type: "CT_FFCheckBox", Bare: true, Props: fd.checkBox})
	}
	if fd.n.Child(ddListTag) != nil {
		dd := &simple.Value{Type: "CT_FFDDList", Bare: true, Props: append([]simple.Prop(nil), fd.ddList...)}
		dd.Set("listEntry", append([]string{}, fd.entries...))
		out.Set("ddList", dd)
	}
	if fd.n.Child(textInputTag) != nil {
		out.Set("textInput", &simple.Value{Type: "CT_FFTextInput", Bare: true, Props: fd.textInput})
	}
	return out
}

// entryAt returns entries[i] when i is an in-range index.
func entryAt(entries []string, i any) (string, bool) {
	idx, ok := i.(int)
	if !ok || idx < 0 || idx >= len(entries) {
		return "", false
	}
	return entries[idx], true
}
