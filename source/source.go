// Package source reads a crawled novel record from disk.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"novel-binder/model"

	"golang.org/x/text/encoding/simplifiedchinese"
	"gopkg.in/yaml.v3"
)

var ErrNoChapters = errors.New("novel has no chapters")

// Load decodes a novel from a .json, .yaml or .yml file.
func Load(path string) (*model.Novel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read novel: %w", err)
	}
	novel, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return novel, nil
}

// Decode parses data in the format named by ext. Input that is not valid
// UTF-8 is read as GB18030, which older Chinese sites still serve.
func Decode(data []byte, ext string) (*model.Novel, error) {
	if !utf8.Valid(data) {
		decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode novel: %w", err)
		}
		data = decoded
	}

	novel := &model.Novel{}
	switch strings.ToLower(ext) {
	case ".json":
		err := json.Unmarshal(data, novel)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal novel: %w", err)
		}
	case ".yaml", ".yml":
		err := yaml.Unmarshal(data, novel)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal novel: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported novel format %q", ext)
	}

	err := Validate(novel)
	if err != nil {
		return nil, err
	}
	return novel, nil
}

// Validate checks the invariants the binder relies on: at least one chapter,
// unique chapter ids and unique volume ids.
func Validate(novel *model.Novel) error {
	if len(novel.Chapters) == 0 {
		return ErrNoChapters
	}

	chapterIds := make(map[int]struct{}, len(novel.Chapters))
	for i, chapter := range novel.Chapters {
		if chapter == nil {
			return fmt.Errorf("chapter %d is null", i)
		}
		if _, ok := chapterIds[chapter.Id]; ok {
			return fmt.Errorf("duplicate chapter id %d", chapter.Id)
		}
		chapterIds[chapter.Id] = struct{}{}
	}

	volumeIds := make(map[int]struct{}, len(novel.Volumes))
	for i, volume := range novel.Volumes {
		if volume == nil {
			return fmt.Errorf("volume %d is null", i)
		}
		if _, ok := volumeIds[volume.Id]; ok {
			return fmt.Errorf("duplicate volume id %d", volume.Id)
		}
		volumeIds[volume.Id] = struct{}{}
	}
	return nil
}
