package content

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
	"git.home.luguber.info/inful/pagemill/internal/frontmatter"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
	"git.home.luguber.info/inful/pagemill/internal/metrics"
)

// Converter turns a markdown body into HTML.
type Converter interface {
	Convert(source []byte) (string, error)
}

// InlineRenderer resolves template expressions embedded in converted HTML,
// with an empty context.
type InlineRenderer interface {
	RenderInline(source string) (string, error)
}

// SkipReason records why a file produced no item.
type SkipReason string

const (
	SkipExtension SkipReason = "extension"
	SkipDecode    SkipReason = "decode"
)

// Skip is a file that was excluded from the item set.
type Skip struct {
	Path   string
	Reason SkipReason
}

// Failure is a per-file problem that did not stop the pass.
type Failure struct {
	Path string
	Err  error
}

// CompileResult is the outcome of a compile pass.
type CompileResult struct {
	Items          []*Item // traversal order
	Skipped        []Skip
	InlineFailures []Failure
}

// Compiler turns the content tree into Items.
type Compiler struct {
	root       string
	extensions ExtensionSet
	converter  Converter
	inline     InlineRenderer
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) CompilerOption {
	return func(c *Compiler) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCompiler creates a compiler for the content tree at root. inline may be
// nil to disable the inline template pass.
func NewCompiler(root string, extensions ExtensionSet, converter Converter, inline InlineRenderer, opts ...CompilerOption) *Compiler {
	c := &Compiler{
		root:       root,
		extensions: extensions,
		converter:  converter,
		inline:     inline,
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile walks the content root in lexical order and compiles every
// recognized content file. I/O errors and converter errors abort the pass;
// inline render failures are logged and the unrendered HTML is kept.
func (c *Compiler) Compile() (*CompileResult, error) {
	res := &CompileResult{}

	err := Walk(c.root, func(f File, walkErr error) error {
		if walkErr != nil {
			return ferrors.WrapError(walkErr, ferrors.CategoryFileSystem, "failed to read content tree").
				WithContext("path", f.Rel).
				Build()
		}
		if !c.extensions.IsContent(f.Rel) {
			c.skip(res, f.Rel, SkipExtension)
			return nil
		}

		item, reason, err := c.compileFile(f, res)
		if err != nil {
			return err
		}
		if item == nil {
			c.skip(res, f.Rel, reason)
			return nil
		}
		res.Items = append(res.Items, item)
		c.recorder.IncItem(metrics.ItemCompiled)
		c.logger.Debug("Compiled content", logfields.Path(item.Path()), logfields.Slug(item.Slug()))
		return nil
	})
	if err != nil {
		if ferrors.IsClassified(err) {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to walk content root").
			WithContext("root", c.root).
			Build()
	}
	return res, nil
}

func (c *Compiler) skip(res *CompileResult, rel string, reason SkipReason) {
	res.Skipped = append(res.Skipped, Skip{Path: rel, Reason: reason})
	c.recorder.IncItem(metrics.ItemSkipped)
	c.logger.Debug("Skipping file", logfields.Path(rel), logfields.Reason(string(reason)))
}

func (c *Compiler) compileFile(f File, res *CompileResult) (*Item, SkipReason, error) {
	meta, raw, err := readSource(f.Abs)
	if err != nil {
		return nil, "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read content file").
			WithContext("path", f.Rel).
			Build()
	}

	body, ok := decodeText(raw)
	if !ok {
		return nil, SkipDecode, nil
	}

	html, err := c.converter.Convert(body)
	if err != nil {
		if ferrors.IsClassified(err) {
			return nil, "", err
		}
		return nil, "", ferrors.WrapError(err, ferrors.CategoryContent, "failed to convert markdown").
			WithContext("path", f.Rel).
			Build()
	}

	if c.inline != nil {
		rendered, err := c.inline.RenderInline(html)
		if err != nil {
			res.InlineFailures = append(res.InlineFailures, Failure{Path: f.Rel, Err: err})
			c.logger.Warn("Failed to render inline template, keeping converted HTML",
				logfields.Path(f.Rel), logfields.Error(err))
		} else {
			html = rendered
		}
	}

	return NewItem(f.Rel, c.extensions.Slug(f.Rel), meta, html), "", nil
}

// readSource reads the metadata header and the remaining body of a file. The
// handle is closed before returning.
func readSource(path string) (frontmatter.Metadata, []byte, error) {
	// #nosec G304 -- path comes from walking the configured content root.
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	meta, err := frontmatter.Read(file)
	if err != nil {
		return nil, nil, fmt.Errorf("read metadata header: %w", err)
	}
	body, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	return meta, body, nil
}

// decodeText validates raw as UTF-8 and strips a leading byte order mark.
func decodeText(raw []byte) ([]byte, bool) {
	if !utf8.Valid(raw) {
		return nil, false
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, false
	}
	return out, true
}
