// Package epub packages a group of chapters into an EPUB 3 file.
package epub

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"novel-binder/logfields"
	"novel-binder/model"
	"novel-binder/template"
	"novel-binder/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/google/uuid"
)

const (
	defaultLanguage = "en"
	epubDirName     = "epub"
	bookIdRef       = "book-id"
)

type Builder struct {
	OutputPath  string
	Title       string
	Authors     []string
	Language    string
	Description string
	StyleCSS    string

	logger *slog.Logger
}

// NewBuilder writes books to <outputRoot>/epub using the novel's metadata.
func NewBuilder(outputRoot string, novel *model.Novel, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	language := novel.Language
	if language == "" {
		language = defaultLanguage
	}
	return &Builder{
		OutputPath:  filepath.Join(outputRoot, epubDirName),
		Title:       novel.Title,
		Authors:     novel.Authors,
		Language:    language,
		Description: novel.Description,
		StyleCSS:    template.StyleCSS,
		logger:      logger,
	}
}

// BookTitle is the title of the book made from one group.
func (b *Builder) BookTitle(groupName string) string {
	title := b.Title
	if title == "" {
		title = "Untitled"
	}
	if groupName != "" {
		title = title + " - " + groupName
	}
	return title
}

func chapterFileName(chapter *model.Chapter) string {
	return "chapter-" + utils.ChapterFileName(chapter.Id, ".xhtml")
}

// Build stages the book in a temporary directory and packs it to
// <OutputPath>/<book title>.epub.
func (b *Builder) Build(ctx context.Context, groupName string, chapters []*model.Chapter) (string, error) {
	if len(chapters) == 0 {
		return "", fmt.Errorf("no chapters to pack")
	}
	bookTitle := b.BookTitle(groupName)
	b.logger.Info("Creating epub", logfields.Group(groupName), slog.String("title", bookTitle), logfields.Count(len(chapters)))

	stagingDir, err := os.MkdirTemp("", "novel-binder-epub-*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	for _, chapter := range chapters {
		body, err := normalizeBody(chapter.Body)
		if err != nil {
			return "", fmt.Errorf("failed to normalize chapter %d: %w", chapter.Id, err)
		}
		chapterPath := filepath.Join(stagingDir, "OEBPS", "Text", chapterFileName(chapter))
		err = renderFile(ctx, chapterPath, template.ContentXHTML(chapter.DisplayTitle(), b.Language, templ.Raw(body)))
		if err != nil {
			return "", fmt.Errorf("failed to write chapter: %w", err)
		}
	}

	entries := make([]template.NavLink, 0, len(chapters))
	for _, chapter := range chapters {
		entries = append(entries, template.NavLink{Href: chapterFileName(chapter), Title: chapter.DisplayTitle()})
	}
	err = renderFile(ctx, filepath.Join(stagingDir, "OEBPS", "Text", "contents.xhtml"), template.ContentXHTML("Contents", b.Language, template.TocNav(entries)))
	if err != nil {
		return "", fmt.Errorf("failed to render contents: %w", err)
	}

	err = renderFile(ctx, filepath.Join(stagingDir, "META-INF", "container.xml"), template.ContainerXML())
	if err != nil {
		return "", fmt.Errorf("failed to render container: %w", err)
	}

	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	identifier := fmt.Sprintf("urn:uuid:%s", u.String())

	err = renderFile(ctx, filepath.Join(stagingDir, "OEBPS", "content.opf"), b.contentOPF(identifier, bookTitle, groupName, chapters))
	if err != nil {
		return "", fmt.Errorf("failed to create content opf: %w", err)
	}

	err = renderFile(ctx, filepath.Join(stagingDir, "OEBPS", "toc.ncx"), tocNCX(identifier, bookTitle, chapters))
	if err != nil {
		return "", fmt.Errorf("failed to create toc ncx: %w", err)
	}

	cssPath := filepath.Join(stagingDir, "OEBPS", "Styles", "style.css")
	err = os.MkdirAll(filepath.Dir(cssPath), 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create style directory: %w", err)
	}
	err = os.WriteFile(cssPath, []byte(b.StyleCSS), 0644)
	if err != nil {
		return "", fmt.Errorf("failed to write CSS: %w", err)
	}

	err = os.MkdirAll(b.OutputPath, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	savePath := filepath.Join(b.OutputPath, utils.CleanDirName(bookTitle)+".epub")
	err = PackEpub(stagingDir, savePath)
	if err != nil {
		return "", fmt.Errorf("failed to pack epub: %w", err)
	}
	return savePath, nil
}

func (b *Builder) contentOPF(identifier, bookTitle, groupName string, chapters []*model.Chapter) templ.Component {
	creators := make([]model.DCCreator, 0, len(b.Authors))
	for _, author := range b.Authors {
		creators = append(creators, model.DCCreator{Value: author, Role: "aut"})
	}
	dc := &model.DublinCoreMetadata{
		Titles:      []model.DCValue{{Value: bookTitle}},
		Identifiers: []model.DCIdentifier{{Value: identifier, ID: bookIdRef}},
		Languages:   []model.DCValue{{Value: b.Language}},
		Creators:    creators,
		Metas: []model.DublinCoreMeta{
			{
				Property: "dcterms:modified",
				Value:    time.Now().UTC().Format("2006-01-02T15:04:05Z"),
			},
		},
	}
	if b.Description != "" {
		dc.Descriptions = []model.DCValue{{Value: b.Description}}
	}
	if groupName != "" && b.Title != "" {
		dc.Metas = append(dc.Metas, model.DublinCoreMeta{Name: "calibre:series", Content: b.Title})
	}

	manifest := &model.Manifest{Items: make([]model.ManifestItem, 0, len(chapters)+3)}
	manifest.Items = append(manifest.Items, model.ManifestItem{
		ID:    "ncx",
		Link:  "toc.ncx",
		Media: "application/x-dtbncx+xml",
	})
	manifest.Items = append(manifest.Items, model.ManifestItem{
		ID:         "contents",
		Link:       "Text/contents.xhtml",
		Media:      "application/xhtml+xml",
		Properties: "nav",
	})
	for _, chapter := range chapters {
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:    strings.TrimSuffix(chapterFileName(chapter), ".xhtml"),
			Link:  "Text/" + chapterFileName(chapter),
			Media: "application/xhtml+xml",
		})
	}
	manifest.Items = append(manifest.Items, model.ManifestItem{
		ID:    "style",
		Link:  "Styles/style.css",
		Media: "text/css",
	})

	spine := &model.Spine{Toc: "ncx", Items: make([]model.SpineItem, 0, len(chapters)+1)}
	for _, item := range manifest.Items {
		if filepath.Ext(item.Link) == ".xhtml" {
			spine.Items = append(spine.Items, model.SpineItem{IDref: item.ID})
		}
	}

	guide := &model.Guide{Items: []model.GuideItem{{Title: "Contents", Type: "toc", Link: "Text/contents.xhtml"}}}

	return template.ContentOPF(bookIdRef, dc, manifest, spine, guide)
}

func tocNCX(identifier, bookTitle string, chapters []*model.Chapter) templ.Component {
	navMap := &model.NavMap{Points: make([]*model.NavPoint, 0, len(chapters)+1)}
	navMap.Points = append(navMap.Points, &model.NavPoint{
		Id:        "contents",
		PlayOrder: 1,
		Label:     "Contents",
		Content:   model.NavPointContent{Src: "Text/contents.xhtml"},
	})
	for _, chapter := range chapters {
		navMap.Points = append(navMap.Points, &model.NavPoint{
			Id:        strings.TrimSuffix(chapterFileName(chapter), ".xhtml"),
			PlayOrder: len(navMap.Points) + 1,
			Label:     chapter.DisplayTitle(),
			Content:   model.NavPointContent{Src: "Text/" + chapterFileName(chapter)},
		})
	}
	head := &model.TocNCXHead{
		Meta: []model.TocNCXHeadMeta{
			{Name: "dtb:uid", Content: identifier},
			{Name: "dtb:depth", Content: "1"},
			{Name: "dtb:totalPageCount", Content: "0"},
			{Name: "dtb:maxPageNumber", Content: "0"},
		},
	}
	return template.TocNCX(bookTitle, head, navMap)
}

// normalizeBody re-serialises crawled HTML so void elements are self-closed
// and the result can be embedded in an XHTML document.
func normalizeBody(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}
	doc.Find("script").Remove()
	return doc.Find("body").Html()
}

func renderFile(ctx context.Context, path string, component templ.Component) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	err = component.Render(ctx, file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
