package node

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// XML namespaces used in WordprocessingML packages.
const (
	NSW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSM   = "http://schemas.openxmlformats.org/officeDocument/2006/math"
	NSMC  = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	NSWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NSW14 = "http://schemas.microsoft.com/office/word/2010/wordml"
	NSW15 = "http://schemas.microsoft.com/office/word/2012/wordml"
	NSXML = "http://www.w3.org/XML/1998/namespace"
)

var prefixes = map[string]string{
	"w15":    NSW15,
	"w14":    NSW14,
	"w10":    "urn:schemas-microsoft-com:office:word",
	"cx":     "http://schemas.microsoft.com/office/drawing/2014/chartex",
	"wp14":   "http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing",
	"wne":    "http://schemas.microsoft.com/office/word/2006/wordml",
	"aink":   "http://schemas.microsoft.com/office/drawing/2016/ink",
	"wps":    "http://schemas.microsoft.com/office/word/2010/wordprocessingShape",
	"wpi":    "http://schemas.microsoft.com/office/word/2010/wordprocessingInk",
	"wp":     NSWP,
	"wpg":    "http://schemas.microsoft.com/office/word/2010/wordprocessingGroup",
	"wpc":    "http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas",
	"mc":     NSMC,
	"w16se":  "http://schemas.microsoft.com/office/word/2015/wordml/symex",
	"w16cid": "http://schemas.microsoft.com/office/word/2016/wordml/cid",
	"am3d":   "http://schemas.microsoft.com/office/drawing/2017/model3d",
	"m":      NSM,
	"o":      "urn:schemas-microsoft-com:office:office",
	"r":      NSR,
	"w":      NSW,
	"v":      "urn:schemas-microsoft-com:vml",
	"xml":    NSXML,
}

var namespaces = func() map[string]string {
	m := make(map[string]string, len(prefixes))
	for p, ns := range prefixes {
		m[ns] = p
	}
	return m
}()

// Q turns a prefixed name such as "w:p" into a qualified xml.Name. A name
// without a prefix is returned unqualified. Q panics on an unknown prefix;
// it is meant for names fixed at compile time.
func Q(prefixed string) xml.Name {
	prefix, local, ok := strings.Cut(prefixed, ":")
	if !ok {
		return xml.Name{Local: prefixed}
	}
	ns, found := prefixes[prefix]
	if !found {
		panic(fmt.Sprintf("node: unknown namespace prefix %q", prefix))
	}
	return xml.Name{Space: ns, Local: local}
}

// W is shorthand for a name in the WordprocessingML main namespace.
func W(local string) xml.Name {
	return xml.Name{Space: NSW, Local: local}
}

// Prefixed is the reverse of Q. Names in namespaces without a known
// prefix are rendered as "{namespace}local".
func Prefixed(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if p, ok := namespaces[name.Space]; ok {
		return p + ":" + name.Local
	}
	return "{" + name.Space + "}" + name.Local
}
