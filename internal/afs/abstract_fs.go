package afs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

var ErrFileTooLarge = errors.New("file is too large")

// A Filesystem is a billy filesystem rooted at a project directory, paths are slash-separated and relative
// to the project root.
type Filesystem interface {
	billy.Filesystem
	Absolute(path string) (string, error)
}

type File = billy.File

type absoluteCapableFilesystem struct {
	billy.Filesystem
	absolute func(path string) (string, error)
}

func AddAbsoluteFeature(fls billy.Filesystem, absolute func(path string) (string, error)) Filesystem {
	return &absoluteCapableFilesystem{
		Filesystem: fls,
		absolute:   absolute,
	}
}

func (fls *absoluteCapableFilesystem) Absolute(path string) (string, error) {
	return fls.absolute(path)
}

// NewOsFilesystem returns a Filesystem rooted at the directory root of the OS filesystem.
func NewOsFilesystem(root string) (Filesystem, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return AddAbsoluteFeature(osfs.New(absRoot), func(path string) (string, error) {
		return filepath.Join(absRoot, filepath.FromSlash(path)), nil
	}), nil
}

// NewMemFilesystem returns an in-memory Filesystem, absolute paths start with '/'.
func NewMemFilesystem() Filesystem {
	return AddAbsoluteFeature(memfs.New(), func(path string) (string, error) {
		return filepath.ToSlash(filepath.Clean("/" + path)), nil
	})
}

// ReadFile reads the content of a file, an error wrapping ErrFileTooLarge is returned if the file
// is larger than maxSize (if maxSize > 0).
func ReadFile(fls billy.Basic, path string, maxSize int64) ([]byte, error) {
	f, err := fls.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if maxSize > 0 {
		reader = io.LimitReader(f, maxSize+1)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, path)
	}
	return content, nil
}

// WriteFile writes a file, the parent directories are created if necessary.
func WriteFile(fls billy.Filesystem, path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := fls.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	f, err := fls.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
