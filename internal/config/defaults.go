package config

import (
	"git.home.luguber.info/inful/pagemill/internal/content"
	"git.home.luguber.info/inful/pagemill/internal/output"
	"git.home.luguber.info/inful/pagemill/internal/pipeline"
)

// Built-in defaults.
const (
	DefaultOutputDir  = "build/"
	DefaultContentDir = "content/"
	DefaultLayoutsDir = "layouts/"
	DefaultSectionKey = pipeline.DefaultSectionKey
	DefaultLayout     = output.DefaultLayout
	DefaultLogLevel   = string(LogLevelInfo)
	DefaultLogFormat  = string(LogFormatText)
)

func applyDefaults(cfg *Config) {
	if cfg.Paths.Output == "" {
		cfg.Paths.Output = DefaultOutputDir
	}
	if cfg.Paths.Content == "" {
		cfg.Paths.Content = DefaultContentDir
	}
	if cfg.Paths.Layouts == "" {
		cfg.Paths.Layouts = DefaultLayoutsDir
	}
	if len(cfg.Content.Extensions) == 0 {
		cfg.Content.Extensions = append([]string(nil), content.DefaultExtensions...)
	}
	if cfg.Content.SectionKey == "" {
		cfg.Content.SectionKey = DefaultSectionKey
	}
	if cfg.Templates.DefaultLayout == "" {
		cfg.Templates.DefaultLayout = DefaultLayout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
