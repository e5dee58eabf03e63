package afs

import (
	"io/fs"

	"github.com/go-git/go-billy/v5"
)

// FsPkgAdapter adapts a Filesystem to a fs.FS (stdlib), it implements fs.ReadDirFS and fs.StatFS.
type FsPkgAdapter struct {
	fs billy.Filesystem
}

func MakeStdlibFsAdapter(fls billy.Filesystem) fs.FS {
	return &FsPkgAdapter{
		fs: fls,
	}
}

func (a *FsPkgAdapter) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	billyFile, err := a.fs.Open(name)
	if err != nil {
		return nil, err
	}

	return &FSPkgFileAdapter{
		openName: name,
		f:        billyFile,
		fs:       a.fs,
	}, nil
}

func (a *FsPkgAdapter) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	infos, err := a.fs.ReadDir(name)
	if err != nil {
		return nil, err
	}

	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (a *FsPkgAdapter) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	return a.fs.Stat(name)
}

type FSPkgFileAdapter struct {
	openName string
	f        billy.File
	fs       billy.Filesystem
}

func (a FSPkgFileAdapter) Stat() (fs.FileInfo, error) {
	capable, ok := a.f.(StatCapable)
	if ok {
		return capable.Stat()
	}
	return a.fs.Stat(a.openName)
}

func (a FSPkgFileAdapter) Read(p []byte) (int, error) {
	return a.f.Read(p)
}

func (a FSPkgFileAdapter) Close() error {
	return a.f.Close()
}
