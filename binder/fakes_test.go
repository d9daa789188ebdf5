package binder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"novel-binder/metrics"
	"novel-binder/model"
	"novel-binder/utils"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(i int) *int { return &i }

func chapter(id int, volume *int, body string) *model.Chapter {
	return &model.Chapter{Id: id, VolumeId: volume, Title: fmt.Sprintf("Chapter %d", id), Body: body}
}

func ids(chapters []*model.Chapter) []int {
	out := make([]int, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, c.Id)
	}
	return out
}

// navRenderer records the neighbours it was given and renders them as text.
type navRenderer struct {
	calls map[int][2]int // chapter id -> prev id, next id (0 = none)
}

func newNavRenderer() *navRenderer {
	return &navRenderer{calls: make(map[int][2]int)}
}

func (r *navRenderer) RenderChapter(chapter, prev, next *model.Chapter) (string, string, error) {
	var p, n int
	if prev != nil {
		p = prev.Id
	}
	if next != nil {
		n = next.Id
	}
	r.calls[chapter.Id] = [2]int{p, n}
	return fmt.Sprintf("<p>%d prev=%d next=%d</p>", chapter.Id, p, n), utils.ChapterFileName(chapter.Id, ".html"), nil
}

// fakeBuilder writes a placeholder file per group.
type fakeBuilder struct {
	dir    string
	groups []string
	sizes  []int
	err    error
}

func (b *fakeBuilder) Build(_ context.Context, groupName string, chapters []*model.Chapter) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	b.groups = append(b.groups, groupName)
	b.sizes = append(b.sizes, len(chapters))
	name := groupName
	if name == "" {
		name = "book"
	}
	path := filepath.Join(b.dir, name+".epub")
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte("epub"), 0644)
}

// fakeToolchain scripts Locate results and failing artifacts.
type fakeToolchain struct {
	installed  bool
	installs   bool // Acquire makes the binary locatable
	acquireErr error
	failing    map[string]bool

	locateCalls  int
	acquireCalls int
	converted    []string
}

func (f *fakeToolchain) Locate() (string, bool) {
	f.locateCalls++
	if f.installed {
		return "/opt/kindlegen", true
	}
	return "", false
}

func (f *fakeToolchain) Acquire(context.Context) error {
	f.acquireCalls++
	if f.acquireErr != nil {
		return f.acquireErr
	}
	if f.installs {
		f.installed = true
	}
	return nil
}

func (f *fakeToolchain) Convert(_ context.Context, handle, artifact string) (string, bool) {
	f.converted = append(f.converted, artifact)
	if handle == "" || f.failing[artifact] {
		return "", false
	}
	return artifact[:len(artifact)-len(filepath.Ext(artifact))] + ".mobi", true
}

var errDownload = errors.New("download failed")

type fakeConfirmer struct {
	answer bool
	asked  []string
}

func (c *fakeConfirmer) Confirm(message string, _ bool) bool {
	c.asked = append(c.asked, message)
	return c.answer
}

// countingRecorder keeps artifact totals per format.
type countingRecorder struct {
	mu        sync.Mutex
	artifacts map[string]int
	results   map[string]metrics.ResultLabel
	outcomes  []string
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{artifacts: map[string]int{}, results: map[string]metrics.ResultLabel{}}
}

func (r *countingRecorder) ObserveStageDuration(string, time.Duration) {}
func (r *countingRecorder) IncConversionResult(bool)                   {}

func (r *countingRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[stage] = result
}

func (r *countingRecorder) AddArtifacts(format string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts[format] += n
}

func (r *countingRecorder) IncConverterOutcome(state string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, state)
}
