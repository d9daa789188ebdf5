package binder

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"novel-binder/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportText(t *testing.T) {
	root := t.TempDir()
	b := New(Options{OutputPath: root, Logger: discardLogger()})
	groups := []Group{{Name: "", Chapters: []*model.Chapter{
		chapter(1, nil, "<p>One</p><p>Two</p>"),
		chapter(2, nil, "<p>Three</p>"),
	}}}

	files, err := b.ExportText(groups)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "web", "00001.txt"),
		filepath.Join(root, "web", "00002.txt"),
	}, files)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "One\r\n\r\nTwo", string(data))
}

func TestExportText_LogsChapterAtDebug(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := New(Options{OutputPath: root, Logger: logger})

	_, err := b.ExportText([]Group{{Name: "", Chapters: []*model.Chapter{chapter(7, nil, "<p>Seven</p>")}}})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.NewDecoder(&buf).Decode(&entry))
	assert.Equal(t, "Wrote text file", entry["msg"])
	assert.EqualValues(t, 7, entry["chapter"])
	assert.Equal(t, filepath.Join(root, "web", "00007.txt"), entry["path"])
}

func TestExportText_Idempotent(t *testing.T) {
	root := t.TempDir()
	b := New(Options{OutputPath: root, Logger: discardLogger()})
	groups := []Group{
		{Name: "Volume 1", Chapters: []*model.Chapter{chapter(1, intPtr(1), "<p>a</p>"), chapter(2, intPtr(1), "<p>b</p>")}},
		{Name: "Volume 2", Chapters: []*model.Chapter{chapter(3, intPtr(2), "<p>c</p>")}},
	}

	first, err := b.ExportText(groups)
	require.NoError(t, err)
	firstContent, err := os.ReadFile(first[2])
	require.NoError(t, err)

	second, err := b.ExportText(groups)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	secondContent, err := os.ReadFile(second[2])
	require.NoError(t, err)
	assert.Equal(t, firstContent, secondContent)

	entries, err := os.ReadDir(filepath.Join(root, "web", "Volume 1"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestExportText_EmptyGroupCreatesDirectoryOnly(t *testing.T) {
	root := t.TempDir()
	b := New(Options{OutputPath: root, Logger: discardLogger()})

	files, err := b.ExportText([]Group{{Name: "Volume 9", Chapters: []*model.Chapter{}}})
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.DirExists(t, filepath.Join(root, "web", "Volume 9"))
}

func TestExportText_WriteFailureIsFatal(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "web")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))
	b := New(Options{OutputPath: root, Logger: discardLogger()})

	files, err := b.ExportText([]Group{{Name: "Volume 1", Chapters: []*model.Chapter{chapter(1, intPtr(1), "<p>a</p>")}}})
	assert.Error(t, err)
	assert.Nil(t, files)
}
