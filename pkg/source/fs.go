// Package source abstracts where the input tree lives. Extraction output is
// always written to the local filesystem; the source may be a local directory
// or a mounted SMB share.
package source

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the capability the scanner and the extractors need from a source
// tree: enumerate it and open files for reading.
type FS interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Open(name string) (fs.File, error)
	Stat(name string) (fs.FileInfo, error)
}

// LocalFS serves a local directory tree.
type LocalFS struct{}

func (l *LocalFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

func (l *LocalFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (l *LocalFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile reads a whole file from fsys. The document parsers all need the
// full content in memory anyway (zip containers, PDF cross references), so
// this is the common read path for local and SMB sources alike.
func ReadFile(fsys FS, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
