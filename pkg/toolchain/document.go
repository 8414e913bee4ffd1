package toolchain

import (
	"encoding/xml"
	"strings"
)

const (
	toolchainsNS   = "http://maven.apache.org/TOOLCHAINS/1.1.0"
	xsiNS          = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://maven.apache.org/TOOLCHAINS/1.1.0 https://maven.apache.org/xsd/toolchains-1.1.0.xsd"
)

// document is the toolchains.xml root. Elements it does not model are kept
// verbatim in the Extra slices.
type document struct {
	XMLName    xml.Name     `xml:"toolchains"`
	Attrs      []xml.Attr   `xml:",any,attr"`
	Toolchains []*toolchain `xml:"toolchain"`
	Extra      []anyElement `xml:",any"`
}

type toolchain struct {
	Type          string       `xml:"type"`
	Provides      *fieldSet    `xml:"provides,omitempty"`
	Configuration *fieldSet    `xml:"configuration,omitempty"`
	Extra         []anyElement `xml:",any"`
}

// fieldSet is a list of simple <name>value</name> children.
type fieldSet struct {
	Fields []*field `xml:",any"`
}

type field struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Value    string       `xml:",chardata"`
	Children []anyElement `xml:",any"`
}

type anyElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

func newDocument() *document {
	return &document{
		XMLName: xml.Name{Local: "toolchains"},
		Attrs: []xml.Attr{
			{Name: xml.Name{Local: "xmlns"}, Value: toolchainsNS},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNS},
			{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: schemaLocation},
		},
	}
}

func (s *fieldSet) get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, f := range s.Fields {
		if f.XMLName.Local == name {
			return f.Value, true
		}
	}
	return "", false
}

func (s *fieldSet) set(name, value string) {
	for _, f := range s.Fields {
		if f.XMLName.Local == name {
			f.Value = value
			f.Children = nil
			return
		}
	}
	s.Fields = append(s.Fields, &field{XMLName: xml.Name{Local: name}, Value: value})
}

// normalize turns decoded namespace information back into literal attribute
// names, so a rewrite reproduces the prefixes of the original file instead of
// the generated ones encoding/xml would emit.
func (d *document) normalize() {
	prefixes := map[string]string{}
	for _, a := range d.Attrs {
		if a.Name.Space == "xmlns" {
			prefixes[a.Value] = a.Name.Local
		}
	}

	attrs := make([]xml.Attr, 0, len(d.Attrs)+1)
	hasDefaultNS := false
	for _, a := range d.Attrs {
		switch {
		case a.Name.Space == "xmlns":
			a.Name = xml.Name{Local: "xmlns:" + a.Name.Local}
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			hasDefaultNS = true
		case a.Name.Space != "":
			prefix, ok := prefixes[a.Name.Space]
			if !ok {
				prefix = a.Name.Space
			}
			a.Name = xml.Name{Local: prefix + ":" + a.Name.Local}
		}
		attrs = append(attrs, a)
	}
	if d.XMLName.Space != "" && !hasDefaultNS {
		attrs = append([]xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: d.XMLName.Space}}, attrs...)
	}
	d.Attrs = attrs
	d.XMLName = xml.Name{Local: "toolchains"}

	for i := range d.Extra {
		d.Extra[i].XMLName.Space = ""
	}
	for _, tc := range d.Toolchains {
		tc.Type = strings.TrimSpace(tc.Type)
		for i := range tc.Extra {
			tc.Extra[i].XMLName.Space = ""
		}
		for _, set := range []*fieldSet{tc.Provides, tc.Configuration} {
			if set == nil {
				continue
			}
			for _, f := range set.Fields {
				f.XMLName.Space = ""
				if len(f.Children) > 0 && strings.TrimSpace(f.Value) == "" {
					f.Value = ""
				} else {
					f.Value = strings.TrimSpace(f.Value)
				}
				for i := range f.Children {
					f.Children[i].XMLName.Space = ""
				}
			}
		}
	}
}
