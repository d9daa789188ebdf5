package model

import "fmt"

// Chapter is one crawled chapter. VolumeId is nil when the work has no volumes.
type Chapter struct {
	Id       int    `json:"id" yaml:"id"`
	VolumeId *int   `json:"volume,omitempty" yaml:"volume,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Body     string `json:"body" yaml:"body"`
}

// DisplayTitle falls back to the ordinal when the source gave no title.
func (c *Chapter) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return fmt.Sprintf("Chapter %d", c.Id)
}

func (c *Chapter) IsEmpty() bool {
	return len(c.Body) == 0
}

// InVolume reports whether the chapter belongs to the volume with the given id.
func (c *Chapter) InVolume(volumeId int) bool {
	return c.VolumeId != nil && *c.VolumeId == volumeId
}

type Volume struct {
	Id    int    `json:"id" yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

type Novel struct {
	Title       string     `json:"title" yaml:"title"`
	Authors     []string   `json:"authors,omitempty" yaml:"authors,omitempty"`
	Language    string     `json:"language,omitempty" yaml:"language,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Volumes     []*Volume  `json:"volumes,omitempty" yaml:"volumes,omitempty"`
	Chapters    []*Chapter `json:"chapters" yaml:"chapters"`
}
