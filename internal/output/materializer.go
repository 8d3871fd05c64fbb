package output

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flosch/pongo2/v6"

	"git.home.luguber.info/inful/pagemill/internal/content"
	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
	"git.home.luguber.info/inful/pagemill/internal/metrics"
	"git.home.luguber.info/inful/pagemill/internal/templates"
)

// DefaultLayout is used for items that do not name a layout.
const DefaultLayout = "index.html"

// Renderer executes a named layout.
type Renderer interface {
	Render(layout string, ctx pongo2.Context) ([]byte, error)
}

// RenderFailure is an item that produced no page.
type RenderFailure struct {
	Path   string
	Layout string
	Err    error
}

// MaterializeResult lists what a materialize pass wrote.
type MaterializeResult struct {
	Written  []string // output files, in item order
	Failures []RenderFailure
}

// Materializer renders items to the output root.
type Materializer struct {
	outputRoot    string
	extensions    content.ExtensionSet
	renderer      Renderer
	defaultLayout string
	recorder      metrics.Recorder
	logger        *slog.Logger
}

// Option configures a Materializer or StaticCopier.
type Option func(*settings)

type settings struct {
	recorder      metrics.Recorder
	logger        *slog.Logger
	defaultLayout string
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *settings) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultLayout overrides DefaultLayout.
func WithDefaultLayout(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.defaultLayout = name
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{
		recorder:      metrics.NoopRecorder{},
		logger:        slog.Default(),
		defaultLayout: DefaultLayout,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewMaterializer creates a materializer writing under outputRoot.
func NewMaterializer(outputRoot string, extensions content.ExtensionSet, renderer Renderer, opts ...Option) *Materializer {
	s := applyOptions(opts)
	return &Materializer{
		outputRoot:    outputRoot,
		extensions:    extensions,
		renderer:      renderer,
		defaultLayout: s.defaultLayout,
		recorder:      s.recorder,
		logger:        s.logger,
	}
}

// Materialize renders every item in order. Each render gets a fresh context:
// base overlaid with the item's fields. Render failures
// are collected; a directory or write failure stops the pass and is returned
// together with the partial result.
func (m *Materializer) Materialize(items []*content.Item, base *templates.BaseContext) (*MaterializeResult, error) {
	res := &MaterializeResult{}

	for _, item := range items {
		dir := m.extensions.OutputDir(m.outputRoot, item.Path())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
				WithContext("path", item.Path()).
				WithContext("dir", dir).
				Build()
		}

		layout := item.Layout(m.defaultLayout)
		page, err := m.renderer.Render(layout, base.With(templates.ItemFields(item)))
		if err != nil {
			res.Failures = append(res.Failures, RenderFailure{Path: item.Path(), Layout: layout, Err: err})
			m.recorder.IncItem(metrics.ItemRenderFailed)
			m.logger.Warn("Failed to render item",
				logfields.Path(item.Path()),
				logfields.Layout(layout),
				logfields.Error(err))
			continue
		}

		file := filepath.Join(dir, content.OutputFileName)
		if err := os.WriteFile(file, page, 0o644); err != nil {
			return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write page").
				WithContext("path", item.Path()).
				WithContext("output", file).
				Build()
		}
		res.Written = append(res.Written, file)
		m.recorder.IncItem(metrics.ItemRendered)
		m.logger.Debug("Wrote page",
			logfields.Path(item.Path()),
			logfields.Layout(layout),
			logfields.Output(file))
	}

	return res, nil
}
