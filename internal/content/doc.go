// Package content compiles a directory tree of content files into Items.
//
// A content file is any regular, non-hidden file whose final extension is in
// the configured ExtensionSet. Each one is split into its metadata header and
// body, the body is converted from markdown to HTML, and the HTML is passed
// once through the template engine with an empty context so inline
// expressions resolve. Other files are left for the static asset pass.
//
// Path rules (slug, output directory, section) are methods on ExtensionSet
// because they depend on which extensions are recognized.
package content
