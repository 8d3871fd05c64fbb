package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pagemill.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_MissingOptionalFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "build/", cfg.Paths.Output)
	assert.Equal(t, "content/", cfg.Paths.Content)
	assert.Equal(t, "layouts/", cfg.Paths.Layouts)
	assert.Equal(t, []string{"md", "html"}, cfg.Content.Extensions)
	assert.Equal(t, "data", cfg.Content.SectionKey)
	assert.Equal(t, "index.html", cfg.Templates.DefaultLayout)
	assert.Empty(t, cfg.Highlight.Theme)
	assert.False(t, cfg.Markdown.EscapeHTML)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"), true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestLoad_ParsesAndExpandsEnv(t *testing.T) {
	t.Setenv("PAGEMILL_TEST_OUT", "/tmp/site")
	p := writeConfig(t, `
paths:
  output: ${PAGEMILL_TEST_OUT}
  content: docs/
highlight:
  theme: monokai
markdown:
  gfm: true
  heading_ids: true
content:
  extensions: [md, markdown]
  section_key: sections
templates:
  default_layout: page.html
log:
  level: DEBUG
metrics:
  textfile: metrics/pagemill.prom
`)

	cfg, err := Load(p, true)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/site", cfg.Paths.Output)
	assert.Equal(t, "docs/", cfg.Paths.Content)
	assert.Equal(t, "layouts/", cfg.Paths.Layouts)
	assert.Equal(t, "monokai", cfg.Highlight.Theme)
	assert.True(t, cfg.Markdown.GFM)
	assert.True(t, cfg.Markdown.HeadingIDs)
	assert.Equal(t, []string{"md", "markdown"}, cfg.Content.Extensions)
	assert.Equal(t, "sections", cfg.Content.SectionKey)
	assert.Equal(t, "page.html", cfg.Templates.DefaultLayout)
	assert.Equal(t, LogLevelDebug, NormalizeLogLevel(cfg.Log.Level))
	assert.Equal(t, "metrics/pagemill.prom", cfg.Metrics.Textfile)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""), true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "paths:\n  outptu: x\n"), true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"extension with separator", func(c *Config) { c.Content.Extensions = []string{"md", "a/b"} }},
		{"blank extension", func(c *Config) { c.Content.Extensions = []string{" "} }},
		{"section key not identifier", func(c *Config) { c.Content.SectionKey = "my-data" }},
		{"section key shadowed by item field", func(c *Config) { c.Content.SectionKey = "body" }},
		{"layout escapes layouts dir", func(c *Config) { c.Templates.DefaultLayout = "../x.html" }},
		{"absolute layout", func(c *Config) { c.Templates.DefaultLayout = "/x.html" }},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
		})
	}

	require.NoError(t, Validate(Default()))
}

func TestInit(t *testing.T) {
	p := filepath.Join(t.TempDir(), "pagemill.yaml")
	require.NoError(t, Init(p, false))

	cfg, err := Load(p, true)
	require.NoError(t, err)
	assert.Equal(t, "github", cfg.Highlight.Theme)
	assert.True(t, cfg.Markdown.GFM)

	err = Init(p, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	require.NoError(t, Init(p, true))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("bogus"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	assert.Equal(t, "DEBUG", LogLevelDebug.SlogLevel().String())
}
