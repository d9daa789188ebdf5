// Package web renders chapters as standalone, linked HTML pages.
package web

import (
	"bytes"
	"context"
	"fmt"

	"novel-binder/model"
	"novel-binder/template"
	"novel-binder/utils"
)

type Renderer struct {
	NovelTitle string
}

func NewRenderer(novelTitle string) *Renderer {
	return &Renderer{NovelTitle: novelTitle}
}

// RenderChapter returns the page markup and its ordinal file name. Links point
// at the neighbours' file names in the same directory.
func (r *Renderer) RenderChapter(chapter, prev, next *model.Chapter) (string, string, error) {
	page := template.ChapterPageData{
		NovelTitle: r.NovelTitle,
		Title:      chapter.DisplayTitle(),
		Body:       chapter.Body,
		Prev:       link(prev),
		Next:       link(next),
	}
	var buf bytes.Buffer
	err := template.ChapterPage(page).Render(context.Background(), &buf)
	if err != nil {
		return "", "", fmt.Errorf("failed to render chapter page: %w", err)
	}
	return buf.String(), FileName(chapter), nil
}

func FileName(chapter *model.Chapter) string {
	return utils.ChapterFileName(chapter.Id, ".html")
}

func link(chapter *model.Chapter) template.NavLink {
	if chapter == nil {
		return template.NavLink{}
	}
	return template.NavLink{Href: FileName(chapter), Title: chapter.DisplayTitle()}
}
