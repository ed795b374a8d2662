package source

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/hirochachacha/go-smb2"
)

// SMBFS serves a mounted SMB share as a source tree. Paths are relative to
// the share root and use forward slashes.
type SMBFS struct {
	Share *smb2.Share
}

func (s *SMBFS) Open(name string) (fs.File, error) {
	return s.Share.Open(name)
}

func (s *SMBFS) Stat(name string) (fs.FileInfo, error) {
	return s.Share.Stat(name)
}

// WalkDir implements a recursive walk over the share. go-smb2 has no walker
// of its own, so directory entries are listed and descended manually.
func (s *SMBFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	if root == "" {
		root = "."
	}
	info, err := s.Share.Stat(root)
	if err != nil {
		return fn(root, nil, err)
	}
	if err := fn(root, fs.FileInfoToDirEntry(info), nil); err != nil {
		if err == fs.SkipDir {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}
	return s.walk(root, fn)
}

func (s *SMBFS) walk(dir string, fn fs.WalkDirFunc) error {
	infos, err := s.Share.ReadDir(dir)
	if err != nil {
		return fn(dir, nil, err)
	}

	for _, info := range infos {
		name := info.Name()
		if name == "." || name == ".." {
			continue
		}

		full := path.Join(dir, name)
		full = strings.ReplaceAll(full, "\\", "/")

		if err := fn(full, fs.FileInfoToDirEntry(info), nil); err != nil {
			if err == fs.SkipDir {
				continue
			}
			return err
		}

		if info.IsDir() {
			// Do not follow reparse points (junctions).
			if info.Mode()&os.ModeSymlink != 0 {
				continue
			}
			if err := s.walk(full, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
