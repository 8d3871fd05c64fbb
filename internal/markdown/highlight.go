package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
)

// ErrUnknownTheme is returned when a theme is neither a style file nor a
// registered style name.
var ErrUnknownTheme = errors.New("unknown highlighting theme")

// Highlighter renders code blocks with a chroma style.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter resolves theme to a chroma style. A theme naming an existing
// file is parsed as a chroma XML style; anything else is looked up in the
// style registry. An empty theme returns a nil highlighter.
func NewHighlighter(theme string) (*Highlighter, error) {
	if theme == "" {
		return nil, nil
	}

	style, err := resolveStyle(theme)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryHighlight, "failed to load highlighting theme").
			Fatal().
			UserAction().
			WithContext("theme", theme).
			Build()
	}

	return &Highlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.TabWidth(4)),
	}, nil
}

func resolveStyle(theme string) (*chroma.Style, error) {
	if info, err := os.Stat(theme); err == nil && info.Mode().IsRegular() {
		// #nosec G304 -- theme file is chosen by the operator.
		f, err := os.Open(theme)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = f.Close()
		}()
		style, err := chroma.NewXMLStyle(f)
		if err != nil {
			return nil, fmt.Errorf("parse style file: %w", err)
		}
		return style, nil
	}

	if style, ok := styles.Registry[theme]; ok {
		return style, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
}

// Theme returns the resolved style name.
func (h *Highlighter) Theme() string {
	return h.style.Name
}

// Highlight writes code as highlighted HTML. The lexer is chosen by lang,
// then by content analysis, then the plain-text fallback.
func (h *Highlighter) Highlight(w io.Writer, lang, code string) error {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return highlightError(err, lang)
	}
	if err := h.formatter.Format(w, h.style, iterator); err != nil {
		return highlightError(err, lang)
	}
	return nil
}

func highlightError(err error, lang string) error {
	return ferrors.WrapError(err, ferrors.CategoryHighlight, "failed to highlight code block").
		Fatal().
		UserAction().
		WithContext("language", lang).
		Build()
}

// codeBlockRenderer replaces goldmark's fenced code block output with
// highlighted HTML.
type codeBlockRenderer struct {
	highlighter *Highlighter
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var lang string
	if l := n.Language(source); l != nil {
		lang = string(l)
	}

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	if err := r.highlighter.Highlight(w, lang, code.String()); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}
