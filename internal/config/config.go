package config

import (
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
)

// DefaultPath is the config file looked up when none is given explicitly.
const DefaultPath = "pagemill.yaml"

// Config represents the application configuration.
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Highlight HighlightConfig `yaml:"highlight"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Content   ContentConfig   `yaml:"content"`
	Templates TemplatesConfig `yaml:"templates"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// PathsConfig locates the input and output trees.
type PathsConfig struct {
	Output  string `yaml:"output"`
	Content string `yaml:"content"`
	Layouts string `yaml:"layouts"`
}

// HighlightConfig selects the code highlighting theme. Theme is a chroma
// style name or a path to a chroma XML style file; empty disables
// highlighting.
type HighlightConfig struct {
	Theme string `yaml:"theme,omitempty"`
}

// MarkdownConfig toggles converter extensions.
type MarkdownConfig struct {
	GFM         bool `yaml:"gfm"`
	Typographer bool `yaml:"typographer"`
	HeadingIDs  bool `yaml:"heading_ids"`
	HardWraps   bool `yaml:"hard_wraps"`
	EscapeHTML  bool `yaml:"escape_html"` // false passes raw HTML through
}

// ContentConfig controls which files are content and how sections are exposed.
type ContentConfig struct {
	Extensions []string `yaml:"extensions"`
	SectionKey string   `yaml:"section_key"`
}

// TemplatesConfig configures layout selection.
type TemplatesConfig struct {
	DefaultLayout string `yaml:"default_layout"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus textfile export. Empty disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Load reads configuration from path. Environment files are loaded first and
// ${VAR} references in the YAML are expanded. When the file does not exist
// and required is false, defaults are returned.
func Load(path string, required bool) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	// #nosec G304 -- config path is chosen by the operator.
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !required:
		// defaults only
	case errors.Is(err, os.ErrNotExist):
		return nil, ferrors.NewError(ferrors.CategoryNotFound, "configuration file not found").
			UserAction().
			WithContext("path", path).
			Build()
	case err != nil:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Build()
	default:
		if err := decode(os.ExpandEnv(string(data)), cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
				UserAction().
				WithContext("path", path).
				Build()
		}
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data string, cfg *Config) error {
	dec := yaml.NewDecoder(strings.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Default returns a configuration holding only built-in defaults.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	example := Default()
	example.Highlight.Theme = "github"
	example.Markdown.GFM = true
	example.Markdown.HeadingIDs = true

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
