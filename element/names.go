package element

import "github.com/blwarren/simplifydocx/simple"

// FriendlyNames maps output types to the names used when friendly-names
// is set. Types not listed keep their name.
var FriendlyNames = map[string]string{
	"CT_Tc":          "table-cell",
	"CT_Row":         "table-row",
	"CT_Tbl":         "table",
	"SymbolChar":     "symbol",
	"CT_Ind":         "indentation-data",
	"CT_SimpleField": "simple-field",
	"CT_Hyperlink":   "hyperlink",
	"CT_P":           "paragraph",
	"numPr":          "numbering-properties",
	"Checkbox":       "check-box",
	"DropDown":       "drop-down",
	"CT_Text":        "text",
	"TextInput":      "text-input",
	"fldChar":        "form-field",
	"CT_FFData":      "form-field-data",
	"CT_FFTextInput": "text-input-data",
	"CT_FFDDList":    "drop-down-data",
	"CT_Body":        "body",
	"CT_FFCheckBox":  "check-box-data",
	"CT_AltChunk":    "nested-file",
	"CT_Document":    "document",
	"CT_Rel":         "nested-file",
}

// ApplyFriendlyNames relabels v in place.
func ApplyFriendlyNames(v *simple.Value) {
	simple.Relabel(v, FriendlyNames)
}
