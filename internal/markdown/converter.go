package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Options controls markdown conversion.
//
// The zero value is plain CommonMark with raw HTML passed through.
type Options struct {
	GFM         bool // tables, strikethrough, task lists, autolinks
	Typographer bool
	HeadingIDs  bool
	HardWraps   bool
	EscapeHTML  bool // replace raw HTML with an omission comment
}

// Converter renders markdown bodies to HTML.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter builds a converter. When hl is nil fenced code blocks are
// emitted as plain <pre><code> blocks.
func NewConverter(opts Options, hl *Highlighter) *Converter {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.GFM)
	}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	var parserOpts []parser.Option
	if opts.HeadingIDs {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}

	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if !opts.EscapeHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	if hl != nil {
		rendererOpts = append(rendererOpts, renderer.WithNodeRenderers(
			util.Prioritized(&codeBlockRenderer{highlighter: hl}, 200),
		))
	}

	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parserOpts...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

// Convert renders source to HTML. Errors come from the highlighter; a
// highlighting failure is returned as a fatal classified error.
func (c *Converter) Convert(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(source, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
