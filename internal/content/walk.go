package content

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is a regular, non-hidden file found under a content root.
type File struct {
	Abs string // absolute or root-joined path for I/O
	Rel string // normalized slash-separated path relative to the root
}

// Name returns the file's base name.
func (f File) Name() string {
	return filepath.Base(f.Abs)
}

// IsHidden reports whether a file name marks a hidden file.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// WalkFunc is called for each accepted file in lexical order. When err is
// non-nil it describes a failure to read the entry at f.Abs; returning nil
// continues the walk past it, returning an error stops the walk.
type WalkFunc func(f File, err error) error

// Walk visits every regular file under root whose name does not start with
// ".". Symlinks are followed when they point to regular files.
func Walk(root string, fn WalkFunc) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root {
				return walkErr
			}
			if err := fn(File{Abs: p, Rel: relTo(root, p)}, walkErr); err != nil {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || IsHidden(d.Name()) {
			return nil
		}
		if !d.Type().IsRegular() {
			if d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			info, err := os.Stat(p)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
		}
		return fn(File{Abs: p, Rel: relTo(root, p)}, nil)
	})
}

func relTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		rel = p
	}
	return NormalizePath(rel)
}
