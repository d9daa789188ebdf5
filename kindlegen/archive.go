package kindlegen

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path"
	"strings"

	"github.com/ulikunitz/xz"
)

// extract picks the archive format from the download URL: .zip, .tar.xz or
// .txz, and gzip-compressed tar for everything else.
func extract(url, archivePath, binaryName, target string) error {
	name := strings.ToLower(url)
	switch {
	case strings.HasSuffix(name, ".zip"):
		return extractZip(archivePath, binaryName, target)
	case strings.HasSuffix(name, ".tar.xz"), strings.HasSuffix(name, ".txz"):
		return extractTar(archivePath, binaryName, target, func(r io.Reader) (io.Reader, error) {
			return xz.NewReader(r)
		})
	default:
		return extractTar(archivePath, binaryName, target, func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	}
}

func extractTar(archivePath, binaryName, target string, decompress func(io.Reader) (io.Reader, error)) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer file.Close()

	r, err := decompress(file)
	if err != nil {
		return err
	}

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return ErrBinaryNotInArchive
		}
		if err != nil {
			return err
		}
		if header.Typeflag == tar.TypeReg && path.Base(header.Name) == binaryName {
			return writeExecutable(target, tr)
		}
	}
}

func extractZip(archivePath, binaryName, target string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != binaryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeExecutable(target, rc)
		rc.Close()
		return err
	}
	return ErrBinaryNotInArchive
}

func writeExecutable(target string, r io.Reader) error {
	tmp := target + ".part"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return err
	}
	_, err = io.Copy(file, r)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, target)
}
