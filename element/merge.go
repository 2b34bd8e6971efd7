package element

import (
	"github.com/blwarren/simplifydocx/options"
	"github.com/blwarren/simplifydocx/simple"
)

// Merge joins consecutive text values and drops empty ones, as opts
// allow. It is a single stable pass and does not modify vals or the
// values in it: a text that absorbs its successors is replaced by a copy.
func Merge(vals []*simple.Value, opts options.Options) []*simple.Value {
	out := make([]*simple.Value, 0, len(vals))
	var last *simple.Value
	owned := false
	for _, v := range vals {
		if v == nil {
			continue
		}
		s, isText := textValue(v)
		if isText && s == "" && opts.IgnoreEmptyText {
			continue
		}
		if last != nil && isText && opts.MergeConsecutive {
			if prev, ok := textValue(last); ok {
				if !owned {
					last = last.Clone()
					out[len(out)-1] = last
					owned = true
				}
				last.Value = prev + s
				continue
			}
		}
		out = append(out, v)
		last = v
		owned = false
	}
	return out
}

// textValue returns the string of a CT_Text value.
func textValue(v *simple.Value) (string, bool) {
	if v.Type != TypeText {
		return "", false
	}
	return v.String()
}
