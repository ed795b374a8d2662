// Package scan walks a source tree and produces the ordered job list for a
// run, plus a tree summary for preview display.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"docprep/pkg/config"
	"docprep/pkg/source"
	"docprep/pkg/utils"
)

// ErrScan wraps failures to read the source root.
var ErrScan = errors.New("scan failed")

// Job is one source file queued for extraction. Immutable once built.
type Job struct {
	// SourcePath locates the file on the source FS (absolute for local
	// sources, share-relative for SMB).
	SourcePath string
	// RelPath is the slash-separated path relative to the source root,
	// preserved in the output tree.
	RelPath string
	// Ext is the lowercased extension, used for extractor dispatch.
	Ext string
	// Index is the stable position in the run's job order.
	Index int
}

// TreeNode is a read-only projection of the scanned tree for UI preview.
// Only directories that contain supported files (directly or below) appear.
type TreeNode struct {
	Name     string
	Dir      bool
	Children []*TreeNode
	// FileCount is the number of supported files in this subtree.
	FileCount int
}

// Result of a scan.
type Result struct {
	Jobs      []Job
	FileCount int
	Tree      *TreeNode
}

// Scan walks root depth-first, filters to the supported extensions and
// returns jobs ordered lexicographically by relative path. Re-scanning an
// unmodified tree yields the same order and count.
func Scan(fsys source.FS, root string) (*Result, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScan, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrScan, root)
	}

	var jobs []Job
	err = fsys.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			utils.Warnf("Error accessing %s: %v", p, err)
			return nil // keep walking
		}
		if d.IsDir() {
			return nil
		}
		if !config.IsSupported(p) {
			return nil
		}

		rel := relativeTo(root, p)
		jobs = append(jobs, Job{
			SourcePath: p,
			RelPath:    rel,
			Ext:        strings.ToLower(path.Ext(rel)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScan, err)
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].RelPath < jobs[j].RelPath })
	for i := range jobs {
		jobs[i].Index = i
	}

	return &Result{
		Jobs:      jobs,
		FileCount: len(jobs),
		Tree:      buildTree(path.Base(strings.TrimRight(filepath.ToSlash(root), "/")), jobs),
	}, nil
}

func relativeTo(root, p string) string {
	if rel, err := filepath.Rel(root, p); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	// SMB walkers hand back share-relative slash paths already.
	rel := strings.TrimPrefix(filepath.ToSlash(p), filepath.ToSlash(root))
	return strings.TrimPrefix(rel, "/")
}

// buildTree folds the sorted job list into a folder/file node structure.
// It is a projection of the same walk, never a second one.
func buildTree(rootName string, jobs []Job) *TreeNode {
	root := &TreeNode{Name: rootName, Dir: true}
	for _, j := range jobs {
		node := root
		node.FileCount++
		parts := strings.Split(j.RelPath, "/")
		for i, part := range parts {
			last := i == len(parts)-1
			if last {
				node.Children = append(node.Children, &TreeNode{Name: part, FileCount: 1})
				break
			}
			child := node.findDir(part)
			if child == nil {
				child = &TreeNode{Name: part, Dir: true}
				node.Children = append(node.Children, child)
			}
			child.FileCount++
			node = child
		}
	}
	return root
}

func (n *TreeNode) findDir(name string) *TreeNode {
	for _, c := range n.Children {
		if c.Dir && c.Name == name {
			return c
		}
	}
	return nil
}
