// Package kindlegen locates, downloads and runs Amazon's kindlegen to turn
// EPUB files into MOBI files.
package kindlegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"novel-binder/logfields"
	"novel-binder/utils"

	"github.com/go-resty/resty/v2"
)

const DefaultBinary = "kindlegen"

var ErrBinaryNotInArchive = errors.New("kindlegen: binary not found in archive")

// DefaultDownloadURL is the last published kindlegen release for this OS.
func DefaultDownloadURL() string {
	switch runtime.GOOS {
	case "windows":
		return "https://kindlegen.s3.amazonaws.com/kindlegen_win32_v2_9.zip"
	case "darwin":
		return "https://kindlegen.s3.amazonaws.com/KindleGen_Mac_i386_v2_9.zip"
	default:
		return "https://kindlegen.s3.amazonaws.com/kindlegen_linux_2.6_i386_v2_9.tar.gz"
	}
}

type Options struct {
	// Dir holds the downloaded binary.
	Dir         string
	Binary      string
	DownloadURL string
}

type Toolchain struct {
	dir         string
	binary      string
	downloadURL string

	client   *resty.Client
	logger   *slog.Logger
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func New(opts Options, logger *slog.Logger) *Toolchain {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.DownloadURL == "" {
		opts.DownloadURL = DefaultDownloadURL()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Toolchain{
		dir:         opts.Dir,
		binary:      opts.Binary,
		downloadURL: opts.DownloadURL,
		client:      utils.NewRestyClient(3),
		logger:      logger,
		lookPath:    exec.LookPath,
		run:         runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (t *Toolchain) binaryName() string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(t.binary, ".exe") {
		return t.binary + ".exe"
	}
	return t.binary
}

// Locate prefers the binary in the tool directory over one on $PATH.
func (t *Toolchain) Locate() (string, bool) {
	if t.dir != "" {
		candidate := filepath.Join(t.dir, t.binaryName())
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0 {
			abs, err := filepath.Abs(candidate)
			if err == nil {
				return abs, true
			}
		}
	}
	path, err := t.lookPath(t.binaryName())
	if err != nil {
		return "", false
	}
	return path, true
}

// Acquire downloads the release archive and extracts the binary into the tool directory.
func (t *Toolchain) Acquire(ctx context.Context) error {
	if t.dir == "" {
		return fmt.Errorf("no kindlegen directory configured")
	}
	err := os.MkdirAll(t.dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create kindlegen directory: %w", err)
	}

	archive, err := os.CreateTemp(t.dir, "download-*")
	if err != nil {
		return fmt.Errorf("failed to create download file: %w", err)
	}
	archivePath := archive.Name()
	archive.Close()
	defer os.Remove(archivePath)

	t.logger.Info("Downloading kindlegen", slog.String("url", t.downloadURL), logfields.Path(t.dir))
	resp, err := t.client.R().SetContext(ctx).SetOutput(archivePath).Get(t.downloadURL)
	if err != nil {
		return fmt.Errorf("failed to download kindlegen: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("failed to download kindlegen: %v", resp.Status())
	}

	target := filepath.Join(t.dir, t.binaryName())
	err = extract(t.downloadURL, archivePath, t.binaryName(), target)
	if err != nil {
		return fmt.Errorf("failed to extract kindlegen: %w", err)
	}
	t.logger.Info("Installed kindlegen", logfields.Path(target))
	return nil
}

// Convert runs kindlegen on one EPUB. kindlegen exits non-zero for warnings,
// so success is decided by the presence of the MOBI file next to the input.
func (t *Toolchain) Convert(ctx context.Context, handle, artifact string) (string, bool) {
	mobi := strings.TrimSuffix(artifact, filepath.Ext(artifact)) + ".mobi"
	err := os.Remove(mobi)
	if err != nil && !os.IsNotExist(err) {
		t.logger.Warn("Failed to remove stale mobi", logfields.Path(mobi), logfields.Error(err))
		return "", false
	}

	output, err := t.run(ctx, handle, artifact, "-c1", "-dont_append_source")
	if _, statErr := os.Stat(mobi); statErr != nil {
		t.logger.Warn("kindlegen produced no output", logfields.Path(artifact), logfields.Error(err), slog.String("output", lastLines(output, 5)))
		return "", false
	}
	if err != nil {
		t.logger.Debug("kindlegen reported warnings", logfields.Path(artifact), slog.String("output", lastLines(output, 5)))
	}
	return mobi, true
}

func lastLines(output []byte, n int) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
