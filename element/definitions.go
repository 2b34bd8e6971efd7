package element

import (
	"encoding/xml"
	"fmt"
	"sort"

	"github.com/blwarren/simplifydocx/dispatch"
	"github.com/blwarren/simplifydocx/node"
	"github.com/blwarren/simplifydocx/options"
)

// Definition names. The CT_ names double as output types for the
// containers walked under them.
const (
	DefRangeMarkup        = "EG_RangeMarkupElements"
	DefRunLevel           = "EG_RunLevelElts"
	DefContentRunContents = "EG_ContentRunContents"
	DefPContent           = "EG_PContent"
	DefBlockLevel         = "EG_BlockLevelElts"
	DefContentRowContent  = "EG_ContentRowContent"
	DefContentCellContent = "EG_ContentCellContent"
	DefRunTrackChange     = "CT_RunTrackChange"
	DefAlternateContent   = "MC_AlternateContent"
	DefSdtContentBlock    = "CT_SdtContentBlock"
	DefSdtContentRun      = "CT_SdtContentRun"
	DefSdtContentRow      = "CT_SdtContentRow"
	DefSdtContentCell     = "CT_SdtContentCell"
)

func tags(prefixed ...string) []xml.Name {
	out := make([]xml.Name, len(prefixed))
	for i, p := range prefixed {
		out[i] = node.Q(p)
	}
	return out
}

func kinds(kind string, prefixed ...string) map[xml.Name]string {
	out := make(map[xml.Name]string, len(prefixed))
	for _, p := range prefixed {
		out[node.Q(p)] = kind
	}
	return out
}

// with merges maps into m, returning m.
func with(m map[xml.Name]string, more ...map[xml.Name]string) map[xml.Name]string {
	for _, extra := range more {
		for k, v := range extra {
			m[k] = v
		}
	}
	return m
}

const (
	revisionWarning      = "Ignoring Revision Tags"
	textDirectionWarning = "Ignoring text-direction tags"
)

var staticDefinitions = map[string]dispatch.Definition{
	DefRangeMarkup: {
		Ignore: tags("w:bookmarkStart", "w:bookmarkEnd",
			"w:commentRangeStart", "w:commentRangeEnd",
			"w:moveToRangeStart", "w:moveToRangeEnd"),
		Warn: kinds(revisionWarning,
			"w:customXmlInsRangeStart", "w:customXmlInsRangeEnd",
			"w:customXmlDelRangeStart", "w:customXmlDelRangeEnd",
			"w:customXmlMoveFromRangeStart", "w:customXmlMoveFromRangeEnd",
			"w:customXmlMoveToRangeStart", "w:customXmlMoveToRangeEnd"),
		Skip: map[xml.Name]dispatch.Skip{
			node.Q("w:moveFromRangeStart"): {IDAttr: node.Q("w:id"), End: node.Q("w:moveFromRangeEnd")},
		},
	},
	DefRunLevel: {
		Extends: []string{DefRangeMarkup},
		Yield:   kinds(KindEmpty, "m:oMathPara", "m:oMath"),
		Nest:    kinds(DefRunTrackChange, "w:ins", "w:moveTo"),
		Ignore: tags("w:proofErr", "w:permStart", "w:permEnd", "w:del", "w:moveFrom",
			"w:commentRangeStart", "w:commentRangeEnd",
			"w:moveToRangeStart", "w:moveToRangeEnd"),
	},
	DefRunTrackChange: {
		Extends: []string{DefContentRunContents},
	},
	"CT_Body": {
		Extends: []string{DefBlockLevel},
		Ignore:  tags("w:sectPr"),
	},
	"CT_Document": {
		Yield:  kinds(KindBody, "w:body"),
		Ignore: tags("w:docPartPr", "w:background"),
	},
	"CT_P": {
		Extends: []string{DefPContent},
		Ignore:  tags("w:pPr"),
	},
	"CT_CustomXmlRun": {
		Extends: []string{DefPContent},
		Ignore:  tags("w:customXmlPr"),
	},
	"CT_Hyperlink": {
		Extends: []string{DefPContent},
	},
	"CT_SimpleField": {
		Extends: []string{DefPContent},
	},
	"CT_SmartTagRun": {
		Extends: []string{DefPContent},
		Ignore:  tags("w:smartTagPr"),
	},
	"CT_R": {
		Yield: with(
			kinds(KindText, "w:t"),
			kinds(KindSymbol, "w:sym"),
			kinds(KindSimpleText, "w:br", "w:cr", "w:tab", "w:noBreakHyphen", "w:softHyphen", "w:ptab"),
			kinds(KindFieldChar, "w:fldChar"),
			kinds(KindInstrText, "w:instrText"),
			kinds(KindContentPart, "w:contentPart"),
			kinds(KindEmpty,
				"w:dayShort", "w:monthShort", "w:yearShort",
				"w:dayLong", "w:monthLong", "w:yearLong",
				"w:annotationRef", "w:footnoteRef", "w:endnoteRef",
				"w:footnoteReference", "w:endnoteReference", "w:commentReference",
				"w:object", "w:drawing", "w:pict"),
		),
		Nest: kinds(DefAlternateContent, "mc:AlternateContent"),
		Ignore: tags("w:rPr", "w:delText", "w:delInstrText", "w:pgNum",
			"w:separator", "w:continuationSeparator", "w:ruby", "w:lastRenderedPageBreak"),
	},
	DefAlternateContent: {
		Ignore: tags("mc:Choice"),
		Nest:   kinds("CT_R", "mc:Fallback"),
	},
	"CT_Tbl": {
		Extends: []string{DefContentRowContent},
		Ignore:  tags("w:tblPr", "w:tblGrid"),
	},
	"CT_Row": {
		Extends: []string{DefContentCellContent},
		Ignore:  tags("w:tblPrEx", "w:trPr"),
	},
	"CT_Tc": {
		Extends: []string{DefBlockLevel},
		Ignore:  tags("w:tcPr"),
	},
	DefSdtContentBlock: sdtContent(DefBlockLevel),
	DefSdtContentRun:   sdtContent(DefContentRunContents),
	DefSdtContentRow:   sdtContent(DefContentRowContent),
	DefSdtContentCell:  sdtContent(DefContentCellContent),
}

func sdtContent(group string) dispatch.Definition {
	return dispatch.Definition{
		Ignore: tags("w:sdtPr", "w:sdtEndPr"),
		Nest:   kinds(group, "w:sdtContent"),
	}
}

// RegisterStatic registers the definitions that do not depend on options.
func RegisterStatic(r *dispatch.Registry) error {
	for _, name := range sortedKeys(staticDefinitions) {
		if err := r.Register(name, staticDefinitions[name]); err != nil {
			return err
		}
	}
	return nil
}

// optionDefinitions builds the definitions whose treatments depend on opts.
func optionDefinitions(opts options.Options) map[string]dispatch.Definition {
	// yieldOrNest puts tag into the yield map as kind, or into the nest map
	// under def when flatten is set.
	yieldOrNest := func(d *dispatch.Definition, tag, kind, def string, flatten bool) {
		if flatten {
			d.Nest[node.Q(tag)] = def
		} else {
			d.Yield[node.Q(tag)] = kind
		}
	}
	sdt := func(d *dispatch.Definition, def string) {
		yieldOrNest(d, "w:sdt", KindEmpty, def, opts.FlattenSdt)
	}
	empty := func() dispatch.Definition {
		return dispatch.Definition{Yield: map[xml.Name]string{}, Nest: map[xml.Name]string{}}
	}

	pContent := empty()
	pContent.Extends = []string{DefContentRunContents}
	pContent.Yield[node.Q("w:subDoc")] = KindSubDoc
	pContent.Nest[node.Q("w:r")] = "CT_R"
	yieldOrNest(&pContent, "w:fldSimple", KindSimpleField, DefPContent, opts.FlattenSimpleField)
	yieldOrNest(&pContent, "w:hyperlink", KindHyperlink, DefPContent, opts.FlattenHyperlink)
	pContent.Ignore = tags("w:customXmlPr", "w:smartTagPr")

	runContents := empty()
	runContents.Extends = []string{DefRunLevel}
	runContents.Nest[node.Q("w:r")] = "CT_R"
	yieldOrNest(&runContents, "w:smartTag", KindSmartTag, DefPContent, opts.FlattenSmartTag)
	yieldOrNest(&runContents, "w:customXml", KindCustomXml, DefPContent, opts.FlattenCustomXml)
	sdt(&runContents, DefSdtContentRun)
	runContents.Warn = kinds(textDirectionWarning, "w:dir", "w:bdo")

	block := empty()
	block.Extends = []string{DefRunLevel}
	with(block.Yield, kinds(KindParagraph, "w:p"), kinds(KindTable, "w:tbl"), kinds(KindAltChunk, "w:altChunk"))
	block.Nest[node.Q("w:customXml")] = DefBlockLevel
	sdt(&block, DefSdtContentBlock)
	block.Ignore = tags("w:sectPr", "w:tcPr", "w:pPr", "w:customXmlPr")

	rows := empty()
	rows.Extends = []string{DefRangeMarkup}
	rows.Yield[node.Q("w:tr")] = KindRow
	rows.Nest[node.Q("w:customXml")] = DefContentRowContent
	sdt(&rows, DefSdtContentRow)
	rows.Ignore = tags("w:customXmlPr")

	cells := empty()
	cells.Extends = []string{DefRunLevel}
	cells.Yield[node.Q("w:tc")] = KindCell
	cells.Nest[node.Q("w:customXml")] = DefContentCellContent
	sdt(&cells, DefSdtContentCell)
	cells.Ignore = tags("w:customXmlPr")

	return map[string]dispatch.Definition{
		DefPContent:           pContent,
		DefContentRunContents: runContents,
		DefBlockLevel:         block,
		DefContentRowContent:  rows,
		DefContentCellContent: cells,
	}
}

// NewRegistry returns a resolved registry holding every definition,
// configured for opts.
func NewRegistry(opts options.Options) (*dispatch.Registry, error) {
	r := dispatch.New()
	if err := RegisterStatic(r); err != nil {
		return nil, err
	}
	defs := optionDefinitions(opts)
	for _, name := range sortedKeys(defs) {
		if err := r.Register(name, defs[name]); err != nil {
			return nil, err
		}
	}
	if err := validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Configure rewrites the option-driven definitions of r for opts and
// resolves it again.
func Configure(r *dispatch.Registry, opts options.Options) error {
	defs := optionDefinitions(opts)
	for _, name := range sortedKeys(defs) {
		r.Replace(name, defs[name])
	}
	return validate(r)
}

// validate resolves r and checks that every yielded kind can be built.
func validate(r *dispatch.Registry) error {
	if err := r.ResolveAll(); err != nil {
		return err
	}
	for _, name := range r.Names() {
		res, _ := r.Resolved(name)
		for _, tag := range res.Tags() {
			if kind, ok := res.Yields(tag); ok && !KnownKind(kind) {
				return fmt.Errorf("%w %q (definition %s, tag %s)", ErrUnknownKind, kind, name, node.Prefixed(tag))
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]dispatch.Definition) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
