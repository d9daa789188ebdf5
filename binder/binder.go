// Package binder turns crawled chapters into text, web, EPUB and MOBI files.
//
// Stages run strictly in order (group, text, html, epub, mobi) and each one
// finishes all of its writes before the next starts. Text, HTML and EPUB
// failures abort the run; MOBI conversion problems never do.
package binder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"novel-binder/logfields"
	"novel-binder/metrics"
	"novel-binder/model"
)

const (
	StageText = "text"
	StageHTML = "html"
	StageEpub = "epub"
	StageMobi = "mobi"
)

type Options struct {
	OutputPath   string
	PackByVolume bool

	Renderer  PageRenderer
	Builder   ContainerBuilder
	Toolchain Toolchain
	Confirmer Confirmer

	Logger   *slog.Logger
	Recorder metrics.Recorder
}

type Binder struct {
	outputPath   string
	packByVolume bool

	renderer  PageRenderer
	builder   ContainerBuilder
	toolchain Toolchain
	confirmer Confirmer

	logger   *slog.Logger
	recorder metrics.Recorder
}

func New(opts Options) *Binder {
	b := &Binder{
		outputPath:   opts.OutputPath,
		packByVolume: opts.PackByVolume,
		renderer:     opts.Renderer,
		builder:      opts.Builder,
		toolchain:    opts.Toolchain,
		confirmer:    opts.Confirmer,
		logger:       opts.Logger,
		recorder:     opts.Recorder,
	}
	if b.confirmer == nil {
		b.confirmer = defaultAnswer{}
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.recorder == nil {
		b.recorder = metrics.NoopRecorder{}
	}
	return b
}

// Result summarises a Bind run.
type Result struct {
	Groups     []Group
	Artifacts  []model.Artifact
	Conversion Conversion
}

// Paths returns the produced paths of one format, in production order.
func (r *Result) Paths(format model.Format) []string {
	paths := make([]string, 0)
	for _, a := range r.Artifacts {
		if a.Format == format {
			paths = append(paths, a.Path)
		}
	}
	return paths
}

// Bind runs every stage over the novel's chapters.
func (b *Binder) Bind(ctx context.Context, novel *model.Novel) (*Result, error) {
	groups := GroupChapters(novel.Chapters, novel.Volumes, b.packByVolume)
	b.logger.Info("Grouped chapters", slog.Int("groups", len(groups)), logfields.Count(len(novel.Chapters)))

	result := &Result{Groups: groups}

	textFiles, err := b.runStage(StageText, model.FormatText, func() ([]string, error) {
		return b.ExportText(groups)
	})
	if err != nil {
		return nil, err
	}
	result.Artifacts = append(result.Artifacts, model.Artifacts(model.FormatText, textFiles)...)

	htmlFiles, err := b.runStage(StageHTML, model.FormatHTML, func() ([]string, error) {
		return b.ExportHTML(groups)
	})
	if err != nil {
		return nil, err
	}
	result.Artifacts = append(result.Artifacts, model.Artifacts(model.FormatHTML, htmlFiles)...)

	epubFiles, err := b.runStage(StageEpub, model.FormatEpub, func() ([]string, error) {
		return b.BuildContainers(ctx, NonEmpty(groups))
	})
	if err != nil {
		return nil, err
	}
	result.Artifacts = append(result.Artifacts, model.Artifacts(model.FormatEpub, epubFiles)...)

	started := time.Now()
	result.Conversion = b.ConvertBinary(ctx, epubFiles)
	b.recorder.ObserveStageDuration(StageMobi, time.Since(started))
	b.recorder.AddArtifacts(string(model.FormatMobi), len(result.Conversion.Paths))
	if result.Conversion.State == StateDone {
		b.recorder.IncStageResult(StageMobi, metrics.ResultSuccess)
	} else {
		b.recorder.IncStageResult(StageMobi, metrics.ResultSkipped)
	}
	result.Artifacts = append(result.Artifacts, model.Artifacts(model.FormatMobi, result.Conversion.Paths)...)

	return result, nil
}

func (b *Binder) runStage(stage string, format model.Format, run func() ([]string, error)) ([]string, error) {
	started := time.Now()
	paths, err := run()
	b.recorder.ObserveStageDuration(stage, time.Since(started))
	if err != nil {
		b.recorder.IncStageResult(stage, metrics.ResultFatal)
		b.logger.Error("Stage failed", logfields.Stage(stage), logfields.Error(err))
		return nil, fmt.Errorf("%s stage: %w", stage, err)
	}
	b.recorder.IncStageResult(stage, metrics.ResultSuccess)
	b.recorder.AddArtifacts(string(format), len(paths))
	b.logger.Debug("Stage finished", logfields.Stage(stage), logfields.Format(string(format)), logfields.Count(len(paths)))
	return paths, nil
}
