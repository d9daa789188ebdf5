package web

import (
	"strings"
	"testing"

	"novel-binder/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestRenderChapter(t *testing.T) {
	r := NewRenderer("My Novel")
	prev := &model.Chapter{Id: 6, Title: "Six"}
	cur := &model.Chapter{Id: 7, Title: "Seven & more", Body: "<p>Body text</p>"}
	next := &model.Chapter{Id: 8}

	markup, fileName, err := r.RenderChapter(cur, prev, next)
	require.NoError(t, err)
	assert.Equal(t, "00007.html", fileName)

	doc := parse(t, markup)
	assert.Equal(t, "Seven & more - My Novel", doc.Find("title").Text())
	assert.Equal(t, "Seven & more", doc.Find("h1").Text())
	assert.Equal(t, "Body text", doc.Find("div > p").First().Text())

	prevLinks := doc.Find(`a[rel="prev"]`)
	assert.Equal(t, 2, prevLinks.Length(), "navigation is rendered above and below the chapter")
	assert.Equal(t, "00006.html", prevLinks.First().AttrOr("href", ""))
	assert.Contains(t, prevLinks.First().Text(), "Six")

	nextLink := doc.Find(`a[rel="next"]`).First()
	assert.Equal(t, "00008.html", nextLink.AttrOr("href", ""))
	assert.Contains(t, nextLink.Text(), "Chapter 8")
}

func TestRenderChapter_Edges(t *testing.T) {
	r := NewRenderer("")
	only := &model.Chapter{Id: 1, Body: "<p>x</p>"}

	markup, _, err := r.RenderChapter(only, nil, nil)
	require.NoError(t, err)

	doc := parse(t, markup)
	assert.Zero(t, doc.Find(`a[rel="prev"]`).Length())
	assert.Zero(t, doc.Find(`a[rel="next"]`).Length())
	assert.Zero(t, doc.Find("nav").Length())
	assert.Equal(t, "Chapter 1", doc.Find("title").Text())
}
