package binder

import (
	"fmt"
	"os"

	"novel-binder/logfields"
	"novel-binder/model"
)

// PageRenderer renders one chapter page. prev and next are nil at the edges of
// the chapter's group.
type PageRenderer interface {
	RenderChapter(chapter, prev, next *model.Chapter) (markup string, fileName string, err error)
}

// Neighbours returns the chapters around index i of a single group.
func Neighbours(chapters []*model.Chapter, i int) (prev, next *model.Chapter) {
	if i > 0 {
		prev = chapters[i-1]
	}
	if i+1 < len(chapters) {
		next = chapters[i+1]
	}
	return prev, next
}

// ExportHTML writes one navigable page per chapter under web/<group>/.
func (b *Binder) ExportHTML(groups []Group) ([]string, error) {
	if b.renderer == nil {
		return nil, fmt.Errorf("no page renderer configured")
	}
	webFiles := make([]string, 0)
	for _, group := range groups {
		dir := GroupDir(b.outputPath, group.Name)
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create html directory: %w", err)
		}
		for i, chapter := range group.Chapters {
			prev, next := Neighbours(group.Chapters, i)
			markup, fileName, err := b.renderer.RenderChapter(chapter, prev, next)
			if err != nil {
				return nil, fmt.Errorf("failed to render chapter %d: %w", chapter.Id, err)
			}
			fileName = HTMLPath(b.outputPath, group.Name, fileName)
			err = os.WriteFile(fileName, []byte(markup), 0644)
			if err != nil {
				return nil, fmt.Errorf("failed to write html file: %w", err)
			}
			b.logger.Debug("Wrote html file", logfields.Chapter(chapter.Id), logfields.Path(fileName))
			webFiles = append(webFiles, fileName)
		}
	}
	b.logger.Info("Created html files", logfields.Stage(StageHTML), logfields.Count(len(webFiles)))
	return webFiles, nil
}
