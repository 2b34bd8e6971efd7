// Package docx provides DOCX (Office Open XML) package access.
//
// A Package is a zip archive of XML parts tied together by relationship
// files. Parts are parsed into node trees the first time they are asked
// for and cached on the Package.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/blwarren/simplifydocx/format"
	"github.com/blwarren/simplifydocx/node"
)

var (
	// ErrNotDocx is returned for input that is not a WordprocessingML
	// package.
	ErrNotDocx = errors.New("docx: not a WordprocessingML package")
	// ErrMissingPart is returned when a required or referenced part is
	// absent from the archive.
	ErrMissingPart = errors.New("docx: missing part")
	// ErrExternalTarget is returned for relationships that point outside
	// the package.
	ErrExternalTarget = errors.New("docx: relationship targets an external resource")
	// ErrUnknownRelationship is returned for relationship ids a part does
	// not declare.
	ErrUnknownRelationship = errors.New("docx: unknown relationship id")
	// ErrUnsupportedPart is returned for targets whose content cannot be
	// read as a document.
	ErrUnsupportedPart = errors.New("docx: unsupported part type")
	// ErrTooDeep is returned when embedded packages nest beyond MaxNesting.
	ErrTooDeep = errors.New("docx: embedded packages nest too deeply")
)

const (
	contentTypesName = "[Content_Types].xml"
	packageRelsName  = "_rels/.rels"
	defaultMainPart  = "word/document.xml"
	defaultStyles    = "word/styles.xml"
	defaultNumbering = "word/numbering.xml"
	defaultCoreProps = "docProps/core.xml"
	defaultAppProps  = "docProps/app.xml"

	relBase           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relOfficeDocument = relBase + "officeDocument"
	relStyles         = relBase + "styles"
	relNumbering      = relBase + "numbering"
	relAppProps       = relBase + "extended-properties"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
)

// MaxNesting bounds how many embedded packages may be opened inside one
// another.
const MaxNesting = 8

// Package provides access to the parts of a DOCX archive.
type Package struct {
	closer io.Closer
	files  map[string]*zip.File
	format format.Format
	depth  int

	rels   map[string]relationshipXML
	parts  map[string]*Part
	main   string
	styles *Styles
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Package, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: opening ZIP archive: %v", ErrNotDocx, err)
	}

	p, err := newPackage(&zr.Reader, 0)
	if err != nil {
		zr.Close()
		return nil, err
	}
	p.closer = zr
	return p, nil
}

// OpenBytes opens a DOCX package held in memory.
func OpenBytes(data []byte) (*Package, error) {
	return openBytes(data, 0)
}

// NewReader opens a DOCX package from r, which holds size bytes.
func NewReader(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: opening ZIP archive: %v", ErrNotDocx, err)
	}
	return newPackage(zr, 0)
}

func openBytes(data []byte, depth int) (*Package, error) {
	if !format.IsZip(data) {
		return nil, fmt.Errorf("%w: no ZIP signature", ErrNotDocx)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening ZIP archive: %v", ErrNotDocx, err)
	}
	return newPackage(zr, depth)
}

func newPackage(zr *zip.Reader, depth int) (*Package, error) {
	p := &Package{
		files: make(map[string]*zip.File, len(zr.File)),
		parts: make(map[string]*Part),
		depth: depth,
	}
	for _, f := range zr.File {
		p.files[f.Name] = f
	}

	// Package relationships locate the main part; older writers omit
	// them, so a missing _rels/.rels is tolerated.
	rels, err := p.readRelationships(packageRelsName)
	if err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}
	p.rels = rels

	if err := p.validate(); err != nil {
		return nil, err
	}

	p.format, err = format.DetectFromArchive(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: reading content types: %v", ErrNotDocx, err)
	}
	if p.format == format.Unknown {
		return nil, ErrNotDocx
	}
	return p, nil
}

// Close releases resources associated with the Package.
func (p *Package) Close() error {
	if p.closer != nil {
		err := p.closer.Close()
		p.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (p *Package) validate() error {
	p.main = defaultMainPart
	if target, ok := p.targetOfType(p.rels, "", relOfficeDocument); ok {
		p.main = target
	}

	for _, name := range []string{contentTypesName, p.main} {
		if _, ok := p.files[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}
	return nil
}

// Format returns the package flavor declared by its content types.
func (p *Package) Format() format.Format {
	return p.format
}

// Depth returns how many packages enclose this one.
func (p *Package) Depth() int {
	return p.depth
}

// Has reports whether the archive contains the named part.
func (p *Package) Has(name string) bool {
	_, ok := p.files[name]
	return ok
}

// read returns the content of a file in the archive.
func (p *Package) read(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Main returns the main document part.
func (p *Package) Main() (*Part, error) {
	return p.Part(p.main)
}

// Part returns the named XML part, parsing it on first use.
func (p *Package) Part(name string) (*Part, error) {
	if part, ok := p.parts[name]; ok {
		return part, nil
	}
	part, err := p.loadPart(name)
	if err != nil {
		return nil, err
	}
	p.parts[name] = part
	return part, nil
}

// Styles returns the resolver built from the main part's styles and
// numbering definitions. Either may be absent.
func (p *Package) Styles() *Styles {
	if p.styles != nil {
		return p.styles
	}
	styles := p.optionalPart(relStyles, defaultStyles)
	numbering := p.optionalPart(relNumbering, defaultNumbering)
	p.styles = NewStyles(styles, NewNumbering(numbering))
	return p.styles
}

// optionalPart returns the root of the part the main part relates to with
// relType, falling back to name. Missing or unreadable parts yield nil.
func (p *Package) optionalPart(relType, name string) *node.Node {
	if rels, err := p.readRelationships(relsName(p.main)); err == nil {
		if target, ok := p.targetOfType(rels, p.main, relType); ok {
			name = target
		}
	}
	if !p.Has(name) {
		return nil
	}
	part, err := p.Part(name)
	if err != nil {
		return nil
	}
	return part.Root()
}

// targetOfType returns the first internal relationship of relType, in
// file order.
func (p *Package) targetOfType(rels map[string]relationshipXML, source, relType string) (string, bool) {
	var first *relationshipXML
	for _, rel := range rels {
		if rel.Type != relType || rel.external() {
			continue
		}
		if first == nil || rel.index < first.index {
			first = &rel
		}
	}
	if first == nil {
		return "", false
	}
	return resolveTarget(source, first.Target), true
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"` // External or empty (internal)

	index int // position in the .rels file
}

func (r relationshipXML) external() bool {
	return strings.EqualFold(r.TargetMode, "External")
}

// readRelationships parses a .rels file. A missing file yields no
// relationships.
func (p *Package) readRelationships(name string) (map[string]relationshipXML, error) {
	out := make(map[string]relationshipXML)
	if !p.Has(name) {
		return out, nil
	}
	data, err := p.read(name)
	if err != nil {
		return nil, err
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, err
	}
	for i, rel := range rels.Relationships {
		rel.index = i
		out[rel.ID] = rel
	}
	return out, nil
}

// relsName returns the relationship file that belongs to a part:
// word/document.xml has word/_rels/document.xml.rels.
func relsName(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// resolveTarget turns a relationship target into an archive name. Targets
// are relative to the directory of the source part unless they start
// with a slash.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(path.Dir(source), target))
}
