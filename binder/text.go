package binder

import (
	"fmt"
	"os"

	"novel-binder/logfields"
	"novel-binder/text"
)

// ExportText writes one plain-text file per chapter under web/<group>/.
func (b *Binder) ExportText(groups []Group) ([]string, error) {
	textFiles := make([]string, 0)
	for _, group := range groups {
		dir := GroupDir(b.outputPath, group.Name)
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create text directory: %w", err)
		}
		for _, chapter := range group.Chapters {
			content, err := text.Plain(chapter.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to convert chapter %d: %w", chapter.Id, err)
			}
			fileName := TextPath(b.outputPath, group.Name, chapter)
			err = os.WriteFile(fileName, []byte(content), 0644)
			if err != nil {
				return nil, fmt.Errorf("failed to write text file: %w", err)
			}
			b.logger.Debug("Wrote text file", logfields.Chapter(chapter.Id), logfields.Path(fileName))
			textFiles = append(textFiles, fileName)
		}
	}
	b.logger.Info("Created text files", logfields.Stage(StageText), logfields.Count(len(textFiles)))
	return textFiles, nil
}
