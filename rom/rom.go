// Package rom reads program images from disk, decompressing them if necessary.
package rom

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/pkg/errors"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("archive contains no files")

// Load reads the program in the given file.
//
// The format is chosen by file extension: .gz is gzip compressed, .zip and
// .7z archives yield their first file. Anything else is returned as is.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	var decoder io.ReadCloser

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		decoder, err = openZip(data)
	case ".7z":
		decoder, err = open7z(data)
	default:
		return data, nil
	}

	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	defer decoder.Close()

	data, err = Read(decoder)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	return data, nil
}

// Read reads a raw program image from r.
func Read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read program")
	}
	return data, nil
}

// openZip opens the first regular file in the given zip archive.
func openZip(data []byte) (io.ReadCloser, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			return f.Open()
		}
	}

	return nil, ErrEmptyArchive
}

// open7z opens the first file in the given 7-zip archive.
func open7z(data []byte) (io.ReadCloser, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	if len(r.File) == 0 {
		return nil, ErrEmptyArchive
	}

	return r.File[0].Open()
}
