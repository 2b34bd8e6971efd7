// Package diag collects the non-fatal conditions raised while a document
// is simplified.
//
// Nothing in this package ever aborts a conversion. Callers pass a
// Collector down explicitly and read the accumulated warnings back once
// the conversion returns.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Kind classifies a Warning.
type Kind string

const (
	// UnexpectedTag is raised for a tag the active dispatch definition
	// does not mention.
	UnexpectedTag Kind = "unexpected-tag"
	// IgnoredTag is raised for a tag listed in a definition's warn map.
	IgnoredTag Kind = "ignored-tag"
	// UnclosedField is raised when a field character is still open at the
	// end of the content that could close it.
	UnclosedField Kind = "unclosed-field"
	// TextInputCollapsed is raised when a text input's results merge into
	// more than one segment and only the first is kept.
	TextInputCollapsed Kind = "text-input-collapsed"
	// GenericFieldData is raised for form-field data that is neither a
	// checkbox, a dropdown, nor a text input.
	GenericFieldData Kind = "generic-field-data"
	// UnresolvedReference is raised when a relationship id does not lead
	// to a readable part.
	UnresolvedReference Kind = "unresolved-reference"
	// UnknownOption is raised for option keys that have no effect.
	UnknownOption Kind = "unknown-option"
)

// Warning is a single diagnostic.
type Warning struct {
	Kind    Kind
	Message string
	// Tag is the prefixed name of the node concerned, if any.
	Tag string
}

func (w Warning) String() string {
	if w.Tag == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", w.Kind, w.Message, w.Tag)
}

// Sink receives warnings.
type Sink interface {
	Add(w Warning)
}

// Collector is a Sink that keeps every warning in order. A Collector may
// also mirror each warning to a logger at debug level. The zero value is
// ready to use.
type Collector struct {
	Log *slog.Logger

	warnings []Warning
}

// NewCollector returns a Collector that logs to log, which may be nil.
func NewCollector(log *slog.Logger) *Collector {
	return &Collector{Log: log}
}

// Add records w.
func (c *Collector) Add(w Warning) {
	c.warnings = append(c.warnings, w)
	if c.Log != nil {
		c.Log.LogAttrs(context.Background(), slog.LevelDebug, w.Message,
			slog.String("kind", string(w.Kind)),
			slog.String("tag", w.Tag))
	}
}

// Addf records a warning built from a format string.
func (c *Collector) Addf(kind Kind, tag string, format string, args ...any) {
	c.Add(Warning{Kind: kind, Tag: tag, Message: fmt.Sprintf(format, args...)})
}

// Warnings returns a copy of the recorded warnings.
func (c *Collector) Warnings() []Warning {
	return append([]Warning(nil), c.warnings...)
}

// Len returns the number of recorded warnings.
func (c *Collector) Len() int {
	return len(c.warnings)
}

// Count returns the number of recorded warnings of the given kind.
func (c *Collector) Count(kind Kind) int {
	n := 0
	for _, w := range c.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Add(Warning) {}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	var sb strings.Builder
	for i, w := range warnings {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}
