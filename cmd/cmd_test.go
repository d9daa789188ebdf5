package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const novelJSON = `{
  "title": "The Novel",
  "authors": ["Author One"],
  "volumes": [{"id": 1}, {"id": 2}],
  "chapters": [
    {"id": 1, "volume": 1, "title": "Start", "body": "<p>One</p><p>Two</p>"},
    {"id": 2, "volume": 1, "body": "<p>Three</p>"},
    {"id": 3, "volume": 2, "body": "<p>Four</p>"}
  ]
}`

// isolate points kindlegen at a server without the archive so the MOBI stage
// ends as unavailable without touching the network.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PATH", "")

	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)
	t.Setenv("BINDER_KINDLEGEN_URL", server.URL+"/kindlegen.tar.gz")
	t.Setenv("BINDER_KINDLEGEN_DIR", filepath.Join(dir, "tools"))
	return dir
}

// resetFlags undoes flag values left behind by an earlier Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)
	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetIn(bytes.NewReader(nil))
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestBindCommand(t *testing.T) {
	dir := isolate(t)
	input := filepath.Join(dir, "novel.json")
	require.NoError(t, os.WriteFile(input, []byte(novelJSON), 0644))
	output := filepath.Join(dir, "out")
	metricsFile := filepath.Join(dir, "binder.prom")

	_, err := execute(t, "bind", "-i", input, "-o", output, "--pack-by-volume", "-y", "--metrics-file", metricsFile)
	require.NoError(t, err)

	for _, name := range []string{
		"web/Volume 1/00001.txt",
		"web/Volume 1/00002.html",
		"web/Volume 2/00003.txt",
		"epub/The Novel - Volume 1.epub",
		"epub/The Novel - Volume 2.epub",
	} {
		assert.FileExists(t, filepath.Join(output, filepath.FromSlash(name)))
	}

	text, err := os.ReadFile(filepath.Join(output, "web", "Volume 1", "00001.txt"))
	require.NoError(t, err)
	assert.Equal(t, "One\r\n\r\nTwo", string(text))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `novel_binder_artifacts_total{format="epub"} 2`)
	assert.Contains(t, string(prom), `novel_binder_converter_outcomes_total{state="unavailable"} 1`)
}

func TestBindCommandWritesMetricsOnFailure(t *testing.T) {
	dir := isolate(t)
	input := filepath.Join(dir, "novel.json")
	require.NoError(t, os.WriteFile(input, []byte(novelJSON), 0644))
	output := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(output, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(output, "web"), []byte("not a directory"), 0644))
	metricsFile := filepath.Join(dir, "binder.prom")

	_, err := execute(t, "bind", "-i", input, "-o", output, "-y", "--metrics-file", metricsFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text stage")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `novel_binder_stage_results_total{result="fatal",stage="text"} 1`)
	assert.NotContains(t, string(prom), `stage="html"`)
}

func TestConvertCommandWritesMetricsOnFailure(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.epub"), []byte("epub"), 0644))
	metricsFile := filepath.Join(dir, "convert.prom")

	_, err := execute(t, "convert", "-d", dir, "-y", "--metrics-file", metricsFile)
	require.Error(t, err)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `novel_binder_converter_outcomes_total{state="unavailable"} 1`)
}

func TestBindCommandRequiresInput(t *testing.T) {
	isolate(t)

	_, err := execute(t, "bind")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input is required")
}

func TestBindCommandRejectsEmptyNovel(t *testing.T) {
	dir := isolate(t)
	input := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(input, []byte("title: x\nchapters: []\n"), 0644))

	_, err := execute(t, "bind", "-i", input, "-o", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "novel has no chapters")
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestConvertCommandWithoutEpubs(t *testing.T) {
	dir := isolate(t)

	_, err := execute(t, "convert", "-d", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no epub files")
}

func TestConvertCommandWithoutKindlegen(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.epub"), []byte("epub"), 0644))

	_, err := execute(t, "convert", "-d", dir, "-y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kindlegen is not available")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version:  "+Version)
}
