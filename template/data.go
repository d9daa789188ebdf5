package template

import (
	"context"
	"io"

	"novel-binder/model"

	"github.com/a-h/templ"
)

const (
	xmlHeader      = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
	stylesheetLink = `<link href="../Styles/style.css" rel="stylesheet" type="text/css"/>`
)

// NavLink points at a neighbouring page. A zero NavLink renders nothing.
type NavLink struct {
	Href  string
	Title string
}

type ChapterPageData struct {
	NovelTitle string
	Title      string
	Body       string
	Prev       NavLink
	Next       NavLink
}

func (p ChapterPageData) DocumentTitle() string {
	if p.NovelTitle == "" {
		return p.Title
	}
	return p.Title + " - " + p.NovelTitle
}

// ContentOPF renders the package document around the marshalled fragments.
func ContentOPF(uniqueIdentifier string, dc *model.DublinCoreMetadata, manifest *model.Manifest, spine *model.Spine, guide *model.Guide) templ.Component {
	fragments := make([]string, 0, 4)
	for _, v := range []any{dc, manifest, spine, guide} {
		fragment, err := model.MarshalFragment(v)
		if err != nil {
			return failed(err)
		}
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	return packageDocument(uniqueIdentifier, fragments)
}

// TocNCX renders the EPUB 2 navigation control file.
func TocNCX(title string, head *model.TocNCXHead, navMap *model.NavMap) templ.Component {
	headXML, err := model.MarshalFragment(head)
	if err != nil {
		return failed(err)
	}
	navMapXML, err := model.MarshalFragment(navMap)
	if err != nil {
		return failed(err)
	}
	return ncxDocument(title, headXML, navMapXML)
}

func failed(err error) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error {
		return err
	})
}
