package model

import "encoding/xml"

// Package document (content.opf) fragments. The dc: and opf: prefixes are
// declared on the enclosing <package> element by the template.

type DublinCoreMetadata struct {
	XMLName xml.Name `xml:"metadata"`

	Titles       []DCValue      `xml:"dc:title"`
	Identifiers  []DCIdentifier `xml:"dc:identifier"`
	Languages    []DCValue      `xml:"dc:language"`
	Creators     []DCCreator    `xml:"dc:creator"`
	Descriptions []DCValue      `xml:"dc:description"`

	Metas []DublinCoreMeta `xml:"meta"`
}

// DCValue is any Dublin Core element that only carries text.
type DCValue struct {
	Value string `xml:",chardata"`
}

type DCIdentifier struct {
	Value string `xml:",chardata"`
	ID    string `xml:"id,attr,omitempty"`
}

type DCCreator struct {
	Value string `xml:",chardata"`
	Role  string `xml:"opf:role,attr,omitempty"`
}

// DublinCoreMeta covers both EPUB 2 name/content metas and EPUB 3 property metas.
type DublinCoreMeta struct {
	Name     string `xml:"name,attr,omitempty"`
	Content  string `xml:"content,attr,omitempty"`
	Property string `xml:"property,attr,omitempty"`
	Value    string `xml:",chardata"`
}

type Manifest struct {
	XMLName xml.Name       `xml:"manifest"`
	Items   []ManifestItem `xml:"item"`
}

type ManifestItem struct {
	ID         string `xml:"id,attr"`
	Link       string `xml:"href,attr"`
	Media      string `xml:"media-type,attr,omitempty"`
	Properties string `xml:"properties,attr,omitempty"`
}

type Spine struct {
	XMLName xml.Name    `xml:"spine"`
	Toc     string      `xml:"toc,attr,omitempty"`
	Items   []SpineItem `xml:"itemref"`
}

type SpineItem struct {
	IDref string `xml:"idref,attr"`
}

type Guide struct {
	XMLName xml.Name    `xml:"guide"`
	Items   []GuideItem `xml:"reference"`
}

type GuideItem struct {
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
	Link  string `xml:"href,attr"`
}

// NCX (toc.ncx) fragments.

type TocNCXHead struct {
	XMLName xml.Name         `xml:"head"`
	Meta    []TocNCXHeadMeta `xml:"meta"`
}

type TocNCXHeadMeta struct {
	Content string `xml:"content,attr"`
	Name    string `xml:"name,attr"`
}

type NavPoint struct {
	Id        string          `xml:"id,attr"`
	PlayOrder int             `xml:"playOrder,attr"`
	Label     string          `xml:"navLabel>text"`
	Content   NavPointContent `xml:"content"`
}

type NavPointContent struct {
	Src string `xml:"src,attr"`
}

type NavMap struct {
	XMLName xml.Name    `xml:"navMap"`
	Points  []*NavPoint `xml:"navPoint"`
}

// MarshalFragment renders one of the fragments above without an XML header.
// A nil fragment renders as the empty string.
func MarshalFragment(v any) (string, error) {
	switch f := v.(type) {
	case *Guide:
		if f == nil || len(f.Items) == 0 {
			return "", nil
		}
	case *DublinCoreMetadata:
		if f == nil {
			return "", nil
		}
	case *Manifest:
		if f == nil {
			return "", nil
		}
	case *Spine:
		if f == nil {
			return "", nil
		}
	case *TocNCXHead:
		if f == nil {
			return "", nil
		}
	case *NavMap:
		if f == nil {
			return "", nil
		}
	}
	xmlBytes, err := xml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}
