package simple

import "strings"

// Node types recognized by PlainText, under both raw and friendly names.
var (
	paragraphTypes = map[string]bool{"CT_P": true, "paragraph": true}
	rowTypes       = map[string]bool{"CT_Row": true, "table-row": true}
	opaqueTypes    = map[string]bool{"CT_Empty": true}
)

// PlainText renders the text content of a tree. Paragraphs end with a
// newline. Table cells are separated by tabs, with the paragraphs inside
// a cell joined by spaces, and rows end with a newline.
func PlainText(root *Value) string {
	var sb strings.Builder
	writeText(&sb, root)
	return sb.String()
}

func writeText(sb *strings.Builder, v *Value) {
	if v == nil || opaqueTypes[v.Type] {
		return
	}
	if rowTypes[v.Type] {
		cells := make([]string, 0, len(v.Children()))
		for _, c := range v.Children() {
			text := strings.TrimRight(PlainText(c), "\n")
			cells = append(cells, strings.ReplaceAll(text, "\n", " "))
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteByte('\n')
		return
	}

	switch t := v.Value.(type) {
	case string:
		sb.WriteString(t)
	case *Value:
		writeText(sb, t)
	case []*Value:
		for _, c := range t {
			writeText(sb, c)
		}
	case Map:
		if s, ok := t.Get("char"); ok {
			if s, ok := s.(string); ok {
				sb.WriteString(s)
			}
		}
	}
	if paragraphTypes[v.Type] {
		sb.WriteByte('\n')
	}
}
