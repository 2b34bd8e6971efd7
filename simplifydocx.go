// Package simplifydocx converts Word documents into simplified JSON
// trees.
//
// Basic usage:
//
//	doc, warnings, err := simplifydocx.Open("report.docx").Value()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", simplifydocx.FormatWarnings(warnings))
//	}
//
// With options:
//
//	out, _, err := simplifydocx.Open("form.docx").
//	    Option("friendly-names", true).
//	    Option("checkbox-as-text", true).
//	    JSON("  ")
//
// For lower-level control, open the package with docx.Open and pass its
// main part to Simplify.
package simplifydocx

import (
	"errors"

	"github.com/blwarren/simplifydocx/diag"
	"github.com/blwarren/simplifydocx/element"
	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/options"
	"github.com/blwarren/simplifydocx/simple"
)

// ErrNotDocument is returned when the source's root is not w:document.
var ErrNotDocument = errors.New("simplifydocx: source root is not w:document")

// Warning is a non-fatal condition met during a conversion.
type Warning = diag.Warning

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	return diag.FormatWarnings(warnings)
}

// Simplify converts the document src with opts. Conversion either
// completes or fails as a whole: on error no tree is returned, though
// the warnings recorded up to the failure are.
func Simplify(src element.Source, opts options.Options) (*simple.Value, []Warning, error) {
	return simplify(src, settings{options: opts})
}

func simplify(src element.Source, s settings) (*simple.Value, []Warning, error) {
	collector := diag.NewCollector(s.logger)
	for _, key := range s.unknown {
		collector.Addf(diag.UnknownOption, "", "Unknown option %q has no effect", key)
	}

	root := src.Root()
	if root == nil || root.Name != node.W("document") {
		return nil, collector.Warnings(), ErrNotDocument
	}

	ctx, err := element.NewContext(src, s.options, collector)
	if err != nil {
		return nil, collector.Warnings(), err
	}
	if s.logger != nil {
		ctx.Log = s.logger
		ctx.Trace = s.trace
	}

	v, err := element.NewDocument(root).Serialize(ctx, nil)
	if err != nil {
		return nil, collector.Warnings(), err
	}
	if s.options.FriendlyNames {
		element.ApplyFriendlyNames(v)
	}
	return v, collector.Warnings(), nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	md := simplifydocx.Must(simplifydocx.Open("report.docx").Metadata())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustValue is a helper that wraps a call to Value, JSON or Text and
// panics if the error is non-nil. It discards warnings and returns just
// the value.
//
// Example:
//
//	text := simplifydocx.MustValue(simplifydocx.Open("report.docx").Text())
func MustValue[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
