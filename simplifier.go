package simplifydocx

import (
	"fmt"
	"log/slog"

	"github.com/blwarren/simplifydocx/docx"
	"github.com/blwarren/simplifydocx/element"
	"github.com/blwarren/simplifydocx/format"
	"github.com/blwarren/simplifydocx/options"
	"github.com/blwarren/simplifydocx/simple"
)

// Simplifier provides a fluent interface for converting documents.
// Each configuration method returns a new Simplifier instance, so
// partially configured values can be shared and extended.
type Simplifier struct {
	// Source
	filename string
	data     []byte
	pkg      *docx.Package
	src      element.Source

	// Lifecycle
	ownsPackage bool // true if we opened the package and should close it
	opened      bool // true if src is ready

	settings settings

	// Accumulated error (fail-fast)
	err error
}

// Open returns a Simplifier for a .docx file. The file is opened by the
// first terminal operation and closed when it returns.
//
// Example:
//
//	doc, warnings, err := simplifydocx.Open("document.docx").Value()
func Open(filename string) *Simplifier {
	s := &Simplifier{
		filename: filename,
		settings: defaultSettings(),
	}
	if f := format.Detect(filename); f == format.Unknown {
		s.err = fmt.Errorf("%w: unsupported file extension: %s", docx.ErrNotDocx, filename)
	}
	return s
}

// FromBytes returns a Simplifier for a package held in memory.
func FromBytes(data []byte) *Simplifier {
	return &Simplifier{
		data:     data,
		settings: defaultSettings(),
	}
}

// FromPackage returns a Simplifier for an already-opened package.
// The caller is responsible for closing the package.
func FromPackage(p *docx.Package) *Simplifier {
	return &Simplifier{
		pkg:      p,
		settings: defaultSettings(),
	}
}

// FromSource returns a Simplifier for any document source, such as a
// single part or a converted HTML chunk.
func FromSource(src element.Source) *Simplifier {
	return &Simplifier{
		src:      src,
		opened:   true,
		settings: defaultSettings(),
	}
}

// clone creates a shallow copy of the Simplifier with a deep copy of its
// settings.
func (s *Simplifier) clone() *Simplifier {
	return &Simplifier{
		filename:    s.filename,
		data:        s.data,
		pkg:         s.pkg,
		src:         s.src,
		ownsPackage: s.ownsPackage,
		opened:      s.opened,
		settings:    s.settings.clone(),
		err:         s.err,
	}
}

// ensureSource opens the package if not already open.
func (s *Simplifier) ensureSource() error {
	if s.opened {
		return nil
	}

	if s.pkg == nil {
		var err error
		switch {
		case s.filename != "":
			s.pkg, err = docx.Open(s.filename)
		case s.data != nil:
			s.pkg, err = docx.OpenBytes(s.data)
		default:
			return fmt.Errorf("no document specified")
		}
		if err != nil {
			return fmt.Errorf("failed to open DOCX: %w", err)
		}
		s.ownsPackage = true
	}

	main, err := s.pkg.Main()
	if err != nil {
		s.Close()
		return fmt.Errorf("failed to read main document part: %w", err)
	}
	s.src = main
	s.opened = true
	return nil
}

// Close releases resources associated with the Simplifier.
// It is safe to call Close multiple times.
func (s *Simplifier) Close() error {
	if s.ownsPackage && s.pkg != nil {
		err := s.pkg.Close()
		s.pkg = nil
		s.src = nil
		s.opened = false
		s.ownsPackage = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Simplifier instance)
// ============================================================================

// WithOptions replaces every option with opts.
//
// Example:
//
//	opts := options.Defaults()
//	opts.FlattenHyperlink = false
//	doc, _, err := simplifydocx.Open("doc.docx").WithOptions(opts).Value()
func (s *Simplifier) WithOptions(opts options.Options) *Simplifier {
	newS := s.clone()
	newS.settings.options = opts
	return newS
}

// Option sets a single option by key. Unknown keys are accepted and
// reported as warnings by the conversion; values that are not booleans
// fail it.
//
// Example:
//
//	doc, _, err := simplifydocx.Open("doc.docx").Option("friendly-names", true).Value()
func (s *Simplifier) Option(key string, value any) *Simplifier {
	return s.Options(map[string]any{key: value})
}

// Options overlays a flat key/value map on the current options.
func (s *Simplifier) Options(m map[string]any) *Simplifier {
	newS := s.clone()
	opts, unknown, err := newS.settings.options.Apply(m)
	if err != nil {
		if newS.err == nil {
			newS.err = err
		}
		return newS
	}
	newS.settings.options = opts
	newS.settings.unknown = append(newS.settings.unknown, unknown...)
	return newS
}

// Logger mirrors every warning to l at debug level.
func (s *Simplifier) Logger(l *slog.Logger) *Simplifier {
	newS := s.clone()
	newS.settings.logger = l
	return newS
}

// Trace logs every walked tag to the logger at debug level.
func (s *Simplifier) Trace() *Simplifier {
	newS := s.clone()
	newS.settings.trace = true
	return newS
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Value converts the document and returns the simplified tree.
func (s *Simplifier) Value() (*simple.Value, []Warning, error) {
	if s.err != nil {
		return nil, nil, s.err
	}

	if err := s.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer s.Close()

	return simplify(s.src, s.settings)
}

// JSON converts the document and encodes the tree. A non-empty indent
// pretty-prints.
func (s *Simplifier) JSON(indent string) ([]byte, []Warning, error) {
	v, warnings, err := s.Value()
	if err != nil {
		return nil, warnings, err
	}
	out, err := simple.JSON(v, indent)
	return out, warnings, err
}

// YAML converts the document and encodes the tree as YAML.
func (s *Simplifier) YAML() ([]byte, []Warning, error) {
	v, warnings, err := s.Value()
	if err != nil {
		return nil, warnings, err
	}
	out, err := simple.YAML(v)
	return out, warnings, err
}

// Text converts the document and returns its plain text, one line per
// paragraph.
func (s *Simplifier) Text() (string, []Warning, error) {
	v, warnings, err := s.Value()
	if err != nil {
		return "", warnings, err
	}
	return simple.PlainText(v), warnings, nil
}

// Metadata returns the package's document properties.
func (s *Simplifier) Metadata() (docx.Metadata, error) {
	if s.err != nil {
		return docx.Metadata{}, s.err
	}
	if err := s.ensureSource(); err != nil {
		return docx.Metadata{}, err
	}
	defer s.Close()

	if s.pkg == nil {
		if part, ok := s.src.(*docx.Part); ok {
			return part.Package().Metadata(), nil
		}
		return docx.Metadata{}, fmt.Errorf("source carries no package metadata")
	}
	return s.pkg.Metadata(), nil
}
