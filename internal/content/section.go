package content

import "sort"

// SectionIndex groups items by top-level path segment. It holds references
// to the compiled items and never copies them.
type SectionIndex map[string][]*Item

// BuildSectionIndex aggregates items by section, preserving input order within
// each section. The DefaultSection key is always present.
func BuildSectionIndex(items []*Item) SectionIndex {
	idx := SectionIndex{DefaultSection: {}}
	for _, item := range items {
		section := item.Section()
		idx[section] = append(idx[section], item)
	}
	return idx
}

// Names returns the section names in sorted order.
func (s SectionIndex) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
