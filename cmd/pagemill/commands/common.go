package commands

import (
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagemill/internal/config"
)

// Global carries process-wide state shared by every command.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer // human-readable progress lines
	Stderr io.Writer // structured log
}

// NewGlobal creates the shared state with a default text logger on stderr.
func NewGlobal(stdout, stderr io.Writer) *Global {
	return &Global{
		Logger: newLogger(stderr, slog.LevelInfo, config.LogFormatText),
		Stdout: stdout,
		Stderr: stderr,
	}
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `help:"Configuration file path (default: pagemill.yaml when present)" env:"PAGEMILL_CONFIG"`
	Verbose   bool             `short:"v" help:"Enable verbose logging" env:"PAGEMILL_VERBOSE"`
	LogLevel  string           `name:"log-level" help:"Log level (debug, info, warn, error)" env:"PAGEMILL_LOG_LEVEL"`
	LogFormat string           `name:"log-format" help:"Log format (text, json)" env:"PAGEMILL_LOG_FORMAT"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Compile content and write the site"`
	List  ListCmd  `cmd:"" help:"Compile content and list the pages that would be written"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; sets up logging from flags and
// environment. The config file may refine it later in loadConfig.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	c.configureLogging(g, nil)
	return nil
}

func (c *CLI) configureLogging(g *Global, cfg *config.Config) {
	levelRaw, formatRaw := c.LogLevel, c.LogFormat
	if cfg != nil {
		if levelRaw == "" {
			levelRaw = cfg.Log.Level
		}
		if formatRaw == "" {
			formatRaw = cfg.Log.Format
		}
	}

	level := config.NormalizeLogLevel(levelRaw)
	if c.Verbose {
		level = config.LogLevelDebug
	}
	g.Logger = newLogger(g.Stderr, level.SlogLevel(), config.NormalizeLogFormat(formatRaw))
	slog.SetDefault(g.Logger)
}

// loadConfig loads the configuration file and applies its logging settings.
// An explicit --config must exist; the default path is optional.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	path, required := c.Config, true
	if path == "" {
		path, required = config.DefaultPath, false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	c.configureLogging(g, cfg)
	return cfg, nil
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// override replaces dst with src when src is set.
func override(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
