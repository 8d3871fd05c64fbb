package pipeline

import (
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/pagemill/internal/content"
	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
	"git.home.luguber.info/inful/pagemill/internal/markdown"
	"git.home.luguber.info/inful/pagemill/internal/metrics"
	"git.home.luguber.info/inful/pagemill/internal/output"
	"git.home.luguber.info/inful/pagemill/internal/templates"
)

// DefaultSectionKey is the template variable holding the section index.
const DefaultSectionKey = "data"

// Options configures a Pipeline.
type Options struct {
	ContentDir string
	OutputDir  string
	LayoutsDir string
	// Theme is a chroma style name or a path to a chroma XML style file.
	// Empty disables highlighting.
	Theme         string
	Markdown      markdown.Options
	Extensions    []string // content extensions; defaults to content.DefaultExtensions
	SectionKey    string   // defaults to DefaultSectionKey
	DefaultLayout string   // defaults to output.DefaultLayout

	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Pipeline compiles a content tree and materializes it as a site.
type Pipeline struct {
	opts       Options
	extensions content.ExtensionSet
	engine     *templates.Engine
	converter  *markdown.Converter
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// New validates opts and prepares the template engine and highlighter. A
// malformed layout or an unusable theme is returned as a fatal error before
// any content is read.
func New(opts Options) (*Pipeline, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.SectionKey == "" {
		opts.SectionKey = DefaultSectionKey
	}
	if opts.DefaultLayout == "" {
		opts.DefaultLayout = output.DefaultLayout
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = content.DefaultExtensions
	}

	exts, err := content.NewExtensionSet(opts.Extensions...)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid content extensions").
			UserAction().
			Build()
	}

	engine, err := templates.Load(opts.LayoutsDir, opts.Logger)
	if err != nil {
		return nil, err
	}

	hl, err := markdown.NewHighlighter(opts.Theme)
	if err != nil {
		return nil, err
	}
	if hl != nil {
		opts.Logger.Debug("Highlighting enabled", logfields.Theme(hl.Theme()))
	}

	return &Pipeline{
		opts:       opts,
		extensions: exts,
		engine:     engine,
		converter:  markdown.NewConverter(opts.Markdown, hl),
		recorder:   opts.Recorder,
		logger:     opts.Logger,
	}, nil
}

// Engine returns the loaded template engine.
func (p *Pipeline) Engine() *templates.Engine { return p.engine }

// Extensions returns the content extension set.
func (p *Pipeline) Extensions() content.ExtensionSet { return p.extensions }

// DefaultLayout returns the layout used by items that name none.
func (p *Pipeline) DefaultLayout() string { return p.opts.DefaultLayout }

// buildState carries data between stages of one run.
type buildState struct {
	report   *Report
	recorder metrics.Recorder
	logger   *slog.Logger

	items []*content.Item
	base  *templates.BaseContext
}

// Run executes compile, aggregate, materialize and static copy in order. The
// report is always returned; the error is the one that stopped the run.
func (p *Pipeline) Run() (*Report, error) {
	runID := uuid.NewString()
	s := &buildState{
		report:   newReport(runID),
		recorder: p.recorder,
		logger:   p.logger.With(logfields.RunID(runID)),
	}
	s.report.ContentDir = p.opts.ContentDir
	s.report.OutputDir = p.opts.OutputDir
	s.report.Theme = p.opts.Theme

	s.logger.Info("Starting build",
		slog.String("content", p.opts.ContentDir),
		logfields.Output(p.opts.OutputDir),
		slog.String("layouts", p.opts.LayoutsDir))

	err := runStages(s, []StageDef{
		{Name: StageCompile, Fn: p.stageCompile},
		{Name: StageAggregate, Fn: p.stageAggregate},
		{Name: StageMaterialize, Fn: p.stageMaterialize},
		{Name: StageStaticCopy, Fn: p.stageStaticCopy},
	})
	s.report.finish(err, p.recorder)

	s.logger.Info("Build finished",
		logfields.Outcome(string(s.report.Outcome())),
		logfields.Duration(s.report.Duration()),
		slog.Int("pages", len(s.report.Written)),
		slog.Int("assets", len(s.report.Copied)))
	return s.report, err
}

// Compile runs only the compile pass. Nothing is written.
func (p *Pipeline) Compile() (*content.CompileResult, error) {
	return p.compiler(p.logger).Compile()
}

func (p *Pipeline) compiler(logger *slog.Logger) *content.Compiler {
	return content.NewCompiler(p.opts.ContentDir, p.extensions, p.converter, p.engine,
		content.WithRecorder(p.recorder),
		content.WithLogger(logger))
}

func (p *Pipeline) stageCompile(s *buildState) error {
	res, err := p.compiler(s.logger).Compile()
	if err != nil {
		return err
	}
	s.items = res.Items
	s.report.Compiled = len(res.Items)
	s.report.Skipped = res.Skipped
	s.report.InlineFailures = res.InlineFailures
	return nil
}

func (p *Pipeline) stageAggregate(s *buildState) error {
	idx := content.BuildSectionIndex(s.items)
	s.base = templates.NewBaseContext(p.opts.SectionKey, templates.SectionView(idx))
	s.report.Sections = idx.Names()
	for _, name := range s.report.Sections {
		s.logger.Debug("Section", logfields.Section(name), logfields.Count(len(idx[name])))
	}
	return nil
}

func (p *Pipeline) stageMaterialize(s *buildState) error {
	m := output.NewMaterializer(p.opts.OutputDir, p.extensions, p.engine,
		output.WithDefaultLayout(p.opts.DefaultLayout),
		output.WithRecorder(p.recorder),
		output.WithLogger(s.logger))
	res, err := m.Materialize(s.items, s.base)
	if res != nil {
		s.report.Written = res.Written
		s.report.RenderFailures = res.Failures
	}
	return err
}

func (p *Pipeline) stageStaticCopy(s *buildState) error {
	c := output.NewStaticCopier(p.opts.ContentDir, p.opts.OutputDir, p.extensions,
		output.WithRecorder(p.recorder),
		output.WithLogger(s.logger))
	res, err := c.Copy()
	if res != nil {
		s.report.Copied = res.Copied
		s.report.CopyFailures = res.Failures
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to copy static files").
			WithContext("path", p.opts.ContentDir).
			Build()
	}
	return nil
}
