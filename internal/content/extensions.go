package content

import (
	"fmt"
	"path"
	"strings"

	"git.home.luguber.info/inful/pagemill/internal/util/sets"
)

// DefaultExtensions are the content extensions recognized when none are configured.
var DefaultExtensions = []string{"md", "html"}

// ExtensionSet is the explicit set of file extensions treated as content.
// Matching is case-insensitive and ignores a leading dot in configuration.
type ExtensionSet struct {
	exts sets.Set[string]
}

// NewExtensionSet builds a set from extension names such as "md" or ".html".
func NewExtensionSet(exts ...string) (ExtensionSet, error) {
	if len(exts) == 0 {
		return ExtensionSet{}, fmt.Errorf("at least one content extension is required")
	}
	s := sets.New[string]()
	for _, raw := range exts {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "."))
		if ext == "" {
			return ExtensionSet{}, fmt.Errorf("empty content extension")
		}
		if strings.ContainsAny(ext, "./\\") {
			return ExtensionSet{}, fmt.Errorf("invalid content extension %q", raw)
		}
		s.Add(ext)
	}
	return ExtensionSet{exts: s}, nil
}

// MustExtensionSet is NewExtensionSet for static input; it panics on error.
func MustExtensionSet(exts ...string) ExtensionSet {
	s, err := NewExtensionSet(exts...)
	if err != nil {
		panic(err)
	}
	return s
}

// List returns the recognized extensions in sorted order.
func (s ExtensionSet) List() []string {
	return sets.Sorted(s.exts)
}

func (s ExtensionSet) recognized(ext string) bool {
	return s.exts.Has(strings.ToLower(ext))
}

// IsContent reports whether a file name's final extension is recognized.
func (s ExtensionSet) IsContent(name string) bool {
	ext := path.Ext(name)
	return ext != "" && s.recognized(ext[1:])
}

// Stem returns the part of a file name before its content extension.
// Anything after a recognized extension is treated as a qualifier and
// dropped with it, so "post.md", "post.md.html" and "post.html" all have
// stem "post". Names without a recognized extension lose their final one.
func (s ExtensionSet) Stem(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] != '.' {
			continue
		}
		seg, _, _ := strings.Cut(name[i+1:], ".")
		if seg != "" && s.recognized(seg) {
			return name[:i]
		}
	}
	return strings.TrimSuffix(name, path.Ext(name))
}
