package binder

import (
	"path/filepath"

	"novel-binder/model"
	"novel-binder/utils"
)

const webDirName = "web"

// GroupDir is where a group's text and html files live. An empty group name
// resolves to the web directory itself.
func GroupDir(outputRoot, groupName string) string {
	return filepath.Join(outputRoot, webDirName, groupName)
}

func TextPath(outputRoot, groupName string, chapter *model.Chapter) string {
	return filepath.Join(GroupDir(outputRoot, groupName), utils.ChapterFileName(chapter.Id, ".txt"))
}

// HTMLPath places a renderer-suggested file name inside the group directory.
func HTMLPath(outputRoot, groupName, fileName string) string {
	return filepath.Join(GroupDir(outputRoot, groupName), filepath.Base(fileName))
}
