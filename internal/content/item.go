package content

import "git.home.luguber.info/inful/pagemill/internal/frontmatter"

// LayoutKey is the reserved metadata key naming an item's layout.
const LayoutKey = "layout"

// Item is one compiled content file. It is immutable once constructed.
type Item struct {
	path     string
	slug     string
	metadata frontmatter.Metadata
	body     string
}

// NewItem constructs an item, taking a private copy of metadata.
func NewItem(path, slug string, metadata frontmatter.Metadata, body string) *Item {
	return &Item{
		path:     path,
		slug:     slug,
		metadata: metadata.Clone(),
		body:     body,
	}
}

// Path is the slash-separated source path relative to the content root.
func (i *Item) Path() string { return i.path }

// Slug is the public URL path; it always begins with "/".
func (i *Item) Slug() string { return i.slug }

// Body is the fully rendered HTML.
func (i *Item) Body() string { return i.body }

// Section is the item's top-level path segment or DefaultSection.
func (i *Item) Section() string { return SectionOf(i.path) }

// Metadata returns a copy of the item's metadata.
func (i *Item) Metadata() frontmatter.Metadata { return i.metadata.Clone() }

// Layout returns the layout named in metadata, or fallback.
func (i *Item) Layout(fallback string) string {
	if layout, ok := i.metadata[LayoutKey]; ok && layout != "" {
		return layout
	}
	return fallback
}
