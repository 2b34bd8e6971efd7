// Package format detects WordprocessingML package flavors.
package format

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a WordprocessingML package flavor.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Word document (.docx).
	DOCX
	// DOCM indicates a macro-enabled Word document (.docm).
	DOCM
	// DOTX indicates a Word template (.dotx).
	DOTX
	// DOTM indicates a macro-enabled Word template (.dotm).
	DOTM
)

// Content types of the main document part, per flavor.
const (
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ContentTypeDOCM = "application/vnd.ms-word.document.macroEnabled.main+xml"
	ContentTypeDOTX = "application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml"
	ContentTypeDOTM = "application/vnd.ms-word.template.macroEnabledTemplate.main+xml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOCM:
		return "DOCM"
	case DOTX:
		return "DOTX"
	case DOTM:
		return "DOTM"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOCM:
		return ".docm"
	case DOTX:
		return ".dotx"
	case DOTM:
		return ".dotm"
	default:
		return ""
	}
}

// ContentType returns the content type of the format's main part.
func (f Format) ContentType() string {
	switch f {
	case DOCX:
		return ContentTypeDOCX
	case DOCM:
		return ContentTypeDOCM
	case DOTX:
		return ContentTypeDOTX
	case DOTM:
		return ContentTypeDOTM
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return DOCX
	case ".docm":
		return DOCM
	case ".dotx":
		return DOTX
	case ".dotm":
		return DOTM
	default:
		return Unknown
	}
}

// FromContentType maps a main-part content type to its format.
func FromContentType(ct string) Format {
	// Parameters such as charset may follow the media type.
	ct, _, _ = strings.Cut(ct, ";")
	switch strings.TrimSpace(ct) {
	case ContentTypeDOCX:
		return DOCX
	case ContentTypeDOCM:
		return DOCM
	case ContentTypeDOTX:
		return DOTX
	case ContentTypeDOTM:
		return DOTM
	default:
		return Unknown
	}
}

// IsZip reports whether data starts with the zip local file header magic.
func IsZip(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// DetectFromReader inspects the content to determine format.
// Content inspection is more reliable than the extension: it reads the
// package's content types to tell documents from templates.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 4)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	if !IsZip(magic[:n]) {
		return Unknown, nil
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	return DetectFromArchive(zr)
}

type contentTypesXML struct {
	XMLName   xml.Name          `xml:"Types"`
	Overrides []contentOverride `xml:"Override"`
}

type contentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// DetectFromArchive determines the format of an open zip archive.
func DetectFromArchive(zr *zip.Reader) (Format, error) {
	for _, f := range zr.File {
		if f.Name != "[Content_Types].xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Unknown, err
		}
		var types contentTypesXML
		err = xml.NewDecoder(rc).Decode(&types)
		rc.Close()
		if err != nil {
			return Unknown, err
		}
		for _, o := range types.Overrides {
			if format := FromContentType(o.ContentType); format != Unknown {
				return format, nil
			}
		}
	}

	// No declared main part: fall back to the Word part layout.
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}

	return Unknown, nil
}
