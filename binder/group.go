package binder

import (
	"fmt"

	"novel-binder/model"
)

// Group is the unit of directory layout and of EPUB creation.
type Group struct {
	Name     string
	Chapters []*model.Chapter
}

func VolumeGroupName(volumeId int) string {
	return fmt.Sprintf("Volume %d", volumeId)
}

// GroupChapters partitions chapters into one group per volume, in volume order,
// keeping only chapters with a body. Without packByVolume every chapter lands,
// unfiltered, in a single group named "".
func GroupChapters(chapters []*model.Chapter, volumes []*model.Volume, packByVolume bool) []Group {
	if !packByVolume {
		return []Group{{Name: "", Chapters: chapters}}
	}
	groups := make([]Group, 0, len(volumes))
	for _, volume := range volumes {
		group := Group{
			Name:     VolumeGroupName(volume.Id),
			Chapters: make([]*model.Chapter, 0),
		}
		for _, chapter := range chapters {
			if chapter.InVolume(volume.Id) && !chapter.IsEmpty() {
				group.Chapters = append(group.Chapters, chapter)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// NonEmpty drops chapters without a body and then every group left with none.
func NonEmpty(groups []Group) []Group {
	filtered := make([]Group, 0, len(groups))
	for _, group := range groups {
		chapters := make([]*model.Chapter, 0, len(group.Chapters))
		for _, chapter := range group.Chapters {
			if !chapter.IsEmpty() {
				chapters = append(chapters, chapter)
			}
		}
		if len(chapters) == 0 {
			continue
		}
		filtered = append(filtered, Group{Name: group.Name, Chapters: chapters})
	}
	return filtered
}
