package content

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultSection is the section bucket for files at the top of the content root.
const DefaultSection = "default"

// OutputFileName is the file every content item is written to inside its output directory.
const OutputFileName = "index.html"

// NormalizePath converts an OS-specific relative path to the slash-separated,
// NFC-normalized form used as an item's key.
func NormalizePath(rel string) string {
	return norm.NFC.String(filepath.ToSlash(rel))
}

func isIndexStem(stem string) bool {
	return stem == "" || strings.EqualFold(stem, "index")
}

// Slug derives the public URL path of a content file from its relative path.
//
//	blog/post.md     -> /blog/post
//	index.md         -> /
//	about/index.html -> /about/
func (s ExtensionSet) Slug(rel string) string {
	dir, base := path.Split(rel)
	stem := s.Stem(base)
	if isIndexStem(stem) {
		return "/" + dir
	}
	return "/" + dir + stem
}

// OutputDir returns the directory under outputRoot that receives the rendered
// page for rel: the parent directory of rel, plus a directory named after the
// stem unless the stem is empty or "index".
//
//	about.md     -> <out>/about
//	index.md     -> <out>
//	blog/post.md -> <out>/blog/post
func (s ExtensionSet) OutputDir(outputRoot, rel string) string {
	dir, base := path.Split(rel)
	out := filepath.Join(outputRoot, filepath.FromSlash(dir))
	if stem := s.Stem(base); !isIndexStem(stem) {
		out = filepath.Join(out, stem)
	}
	return out
}

// OutputFile is OutputDir joined with OutputFileName.
func (s ExtensionSet) OutputFile(outputRoot, rel string) string {
	return filepath.Join(s.OutputDir(outputRoot, rel), OutputFileName)
}

// SectionOf returns the first path segment of rel, or DefaultSection for
// files at the root.
func SectionOf(rel string) string {
	if section, _, found := strings.Cut(rel, "/"); found {
		return section
	}
	return DefaultSection
}
