package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/pagemill/internal/config"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
	"git.home.luguber.info/inful/pagemill/internal/markdown"
	"git.home.luguber.info/inful/pagemill/internal/metrics"
	"git.home.luguber.info/inful/pagemill/internal/pipeline"
)

// SourceFlags select the inputs shared by build and list.
type SourceFlags struct {
	Content string `short:"c" help:"Content directory (default: content/)" env:"PAGEMILL_CONTENT"`
	Layouts string `short:"l" help:"Layouts directory (default: layouts/)" env:"PAGEMILL_LAYOUTS"`
	Theme   string `short:"t" help:"Highlighting theme name or chroma XML style file" env:"PAGEMILL_THEME"`
}

func (s SourceFlags) apply(cfg *config.Config) {
	override(&cfg.Paths.Content, s.Content)
	override(&cfg.Paths.Layouts, s.Layouts)
	override(&cfg.Highlight.Theme, s.Theme)
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SourceFlags `embed:""`
	Output      string `short:"o" help:"Output directory (default: build/)" env:"PAGEMILL_OUTPUT"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile after the run" env:"PAGEMILL_METRICS_FILE"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	b.apply(cfg)
	override(&cfg.Paths.Output, b.Output)
	override(&cfg.Metrics.Textfile, b.MetricsFile)
	return RunBuild(g, cfg)
}

// pipelineOptions maps configuration onto pipeline options.
func pipelineOptions(g *Global, cfg *config.Config, recorder metrics.Recorder) pipeline.Options {
	return pipeline.Options{
		ContentDir: cfg.Paths.Content,
		OutputDir:  cfg.Paths.Output,
		LayoutsDir: cfg.Paths.Layouts,
		Theme:      cfg.Highlight.Theme,
		Markdown: markdown.Options{
			GFM:         cfg.Markdown.GFM,
			Typographer: cfg.Markdown.Typographer,
			HeadingIDs:  cfg.Markdown.HeadingIDs,
			HardWraps:   cfg.Markdown.HardWraps,
			EscapeHTML:  cfg.Markdown.EscapeHTML,
		},
		Extensions:    cfg.Content.Extensions,
		SectionKey:    cfg.Content.SectionKey,
		DefaultLayout: cfg.Templates.DefaultLayout,
		Recorder:      recorder,
		Logger:        g.Logger,
	}
}

func newPipeline(g *Global, cfg *config.Config) (*pipeline.Pipeline, error) {
	return pipeline.New(pipelineOptions(g, cfg, nil))
}

// RunBuild runs the full pipeline and prints progress to g.Stdout.
func RunBuild(g *Global, cfg *config.Config) error {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	p, err := pipeline.New(pipelineOptions(g, cfg, recorder))
	if err != nil {
		return err
	}

	report, runErr := p.Run()
	for _, f := range report.InlineFailures {
		_, _ = fmt.Fprintf(g.Stdout, "Failed to render %s: %v\n", f.Path, f.Err)
	}
	for _, f := range report.RenderFailures {
		_, _ = fmt.Fprintf(g.Stdout, "Error rendering template %s: %v\n", f.Path, f.Err)
	}
	for _, f := range report.CopyFailures {
		_, _ = fmt.Fprintf(g.Stdout, "Error copying %s: %v\n", f.Path, f.Err)
	}

	if prom != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, prom.Registry()); err != nil {
			g.Logger.Warn("Failed to write metrics textfile",
				logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}

	if runErr != nil {
		return runErr
	}

	_, _ = fmt.Fprintf(g.Stdout, "Compiled %d pages, wrote %d, copied %d assets (%s)\n",
		report.Compiled, len(report.Written), len(report.Copied), report.Outcome())
	_, _ = fmt.Fprintf(g.Stdout, "Output files at %s\n", canonical(cfg.Paths.Output))
	return nil
}

func canonical(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
