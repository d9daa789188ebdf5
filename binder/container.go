package binder

import (
	"context"
	"fmt"

	"novel-binder/logfields"
	"novel-binder/model"
)

// ContainerBuilder packages the chapters of one group into an e-book and
// returns the produced file.
type ContainerBuilder interface {
	Build(ctx context.Context, groupName string, chapters []*model.Chapter) (string, error)
}

// BuildContainers calls the builder once per group that has chapters, in group order.
func (b *Binder) BuildContainers(ctx context.Context, groups []Group) ([]string, error) {
	if b.builder == nil {
		return nil, fmt.Errorf("no container builder configured")
	}
	epubFiles := make([]string, 0)
	for _, group := range groups {
		if len(group.Chapters) == 0 {
			continue
		}
		path, err := b.builder.Build(ctx, group.Name, group.Chapters)
		if err != nil {
			return nil, fmt.Errorf("failed to build epub for %q: %w", group.Name, err)
		}
		b.logger.Debug("Built epub", logfields.Group(group.Name), logfields.Path(path))
		epubFiles = append(epubFiles, path)
	}
	b.logger.Info("Created epub files", logfields.Stage(StageEpub), logfields.Count(len(epubFiles)))
	return epubFiles, nil
}
