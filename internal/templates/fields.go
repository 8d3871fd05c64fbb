package templates

import (
	"github.com/flosch/pongo2/v6"

	"git.home.luguber.info/inful/pagemill/internal/content"
)

// Fields is the template view of one item. pongo2 resolves attributes by
// exported Go name, so layouts read items through this lowercase map rather
// than through *content.Item. Values are typed *pongo2.Value so that a safe
// body keeps its mark when reached through a nested map or a for loop.
type Fields map[string]*pongo2.Value

// ItemFields returns the fields of item: path, slug, metadata and body. The
// body is marked safe and renders unescaped wherever a layout reaches it.
func ItemFields(item *content.Item) Fields {
	return Fields{
		"path":     pongo2.AsValue(item.Path()),
		"slug":     pongo2.AsValue(item.Slug()),
		"metadata": pongo2.AsValue(map[string]string(item.Metadata())),
		"body":     Safe(item.Body()),
	}
}

// SectionView maps each section of idx to the fields of its items, in order.
func SectionView(idx content.SectionIndex) map[string][]Fields {
	view := make(map[string][]Fields, len(idx))
	for name, items := range idx {
		fields := make([]Fields, 0, len(items))
		for _, item := range items {
			fields = append(fields, ItemFields(item))
		}
		view[name] = fields
	}
	return view
}

// Safe marks s as HTML that must not be escaped on output.
func Safe(s string) *pongo2.Value {
	return pongo2.AsSafeValue(s)
}
