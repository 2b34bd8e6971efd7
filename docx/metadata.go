package docx

import (
	"encoding/xml"
	"strings"
)

// Metadata holds the document properties stored in docProps.
type Metadata struct {
	Title          string   `json:"title,omitempty" yaml:"title,omitempty"`
	Subject        string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Creator        string   `json:"creator,omitempty" yaml:"creator,omitempty"`
	Keywords       []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	LastModifiedBy string   `json:"lastModifiedBy,omitempty" yaml:"lastModifiedBy,omitempty"`
	Revision       string   `json:"revision,omitempty" yaml:"revision,omitempty"`
	Created        string   `json:"created,omitempty" yaml:"created,omitempty"`
	Modified       string   `json:"modified,omitempty" yaml:"modified,omitempty"`
	Category       string   `json:"category,omitempty" yaml:"category,omitempty"`
	Application    string   `json:"application,omitempty" yaml:"application,omitempty"`
	Company        string   `json:"company,omitempty" yaml:"company,omitempty"`
	Template       string   `json:"template,omitempty" yaml:"template,omitempty"`
	Format         string   `json:"format" yaml:"format"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName        xml.Name `xml:"coreProperties"`
	Title          string   `xml:"title"`
	Subject        string   `xml:"subject"`
	Creator        string   `xml:"creator"`
	Keywords       string   `xml:"keywords"`
	Description    string   `xml:"description"`
	LastModifiedBy string   `xml:"lastModifiedBy"`
	Revision       string   `xml:"revision"`
	Created        string   `xml:"created"`
	Modified       string   `xml:"modified"`
	Category       string   `xml:"category"`
}

// appPropertiesXML represents docProps/app.xml
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Template    string   `xml:"Template"`
	Application string   `xml:"Application"`
	Company     string   `xml:"Company"`
}

// Metadata reads the core and extended properties. Absent or malformed
// property parts leave their fields empty.
func (p *Package) Metadata() Metadata {
	md := Metadata{Format: p.format.String()}

	var core corePropertiesXML
	if p.decodeProps(relCoreProps, defaultCoreProps, &core) {
		md.Title = core.Title
		md.Subject = core.Subject
		md.Creator = core.Creator
		md.Description = core.Description
		md.LastModifiedBy = core.LastModifiedBy
		md.Revision = core.Revision
		md.Created = core.Created
		md.Modified = core.Modified
		md.Category = core.Category
		if core.Keywords != "" {
			for _, kw := range strings.Split(core.Keywords, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					md.Keywords = append(md.Keywords, kw)
				}
			}
		}
	}

	var app appPropertiesXML
	if p.decodeProps(relAppProps, defaultAppProps, &app) {
		md.Application = app.Application
		md.Company = app.Company
		md.Template = app.Template
	}
	return md
}

func (p *Package) decodeProps(relType, name string, v any) bool {
	if target, ok := p.targetOfType(p.rels, "", relType); ok {
		name = target
	}
	if !p.Has(name) {
		return false
	}
	data, err := p.read(name)
	if err != nil {
		return false
	}
	return xml.Unmarshal(data, v) == nil
}
