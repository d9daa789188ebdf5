package binder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextPath(t *testing.T) {
	root := filepath.Join("out", "novel")
	assert.Equal(t, filepath.Join(root, "web", "Volume 1", "00007.txt"), TextPath(root, "Volume 1", chapter(7, intPtr(1), "")))
	assert.Equal(t, filepath.Join(root, "web", "00012.txt"), TextPath(root, "", chapter(12, nil, "")))
}

func TestHTMLPath_StaysInGroupDir(t *testing.T) {
	root := "out"
	assert.Equal(t, filepath.Join(root, "web", "Volume 2", "00001.html"), HTMLPath(root, "Volume 2", "00001.html"))
	assert.Equal(t, filepath.Join(root, "web", "Volume 2", "evil.html"), HTMLPath(root, "Volume 2", "../../evil.html"))
}

func TestTextPath_DistinctOrdinalsNeverCollide(t *testing.T) {
	seen := make(map[string]int)
	for id := 1; id <= 99999; id += 37 {
		p := TextPath("out", "", chapter(id, nil, ""))
		_, dup := seen[p]
		assert.False(t, dup, "collision at %d", id)
		seen[p] = id
	}
}
