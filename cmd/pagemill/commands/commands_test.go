package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
	"git.home.luguber.info/inful/pagemill/internal/testutil/testutils"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	g := NewGlobal(io.Discard, io.Discard)
	parser, err := kong.New(cli,
		kong.Name("pagemill"),
		kong.Bind(g),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestParse_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("PAGEMILL_THEME", "monokai")
	t.Setenv("PAGEMILL_OUTPUT", "env-out")

	cli, ctx := parse(t, "build", "-o", "flag-out", "-c", "docs")
	assert.Equal(t, "build", ctx.Command())
	assert.Equal(t, "flag-out", cli.Build.Output)
	assert.Equal(t, "docs", cli.Build.Content)
	assert.Equal(t, "monokai", cli.Build.Theme)

	cli, _ = parse(t, "build", "-t", "github")
	assert.Equal(t, "github", cli.Build.Theme)
	assert.Equal(t, "env-out", cli.Build.Output)
}

func TestParse_ListAndInit(t *testing.T) {
	cli, ctx := parse(t, "list", "-l", "tpl")
	assert.Equal(t, "list", ctx.Command())
	assert.Equal(t, "tpl", cli.List.Layouts)

	cli, ctx = parse(t, "--config", "site.yaml", "init", "--force")
	assert.Equal(t, "init", ctx.Command())
	assert.True(t, cli.Init.Force)
	assert.Equal(t, "site.yaml", cli.Config)
}

func site(t *testing.T) (contentDir, layoutsDir string) {
	t.Helper()
	contentDir = testutils.WriteTree(t, map[string]string{
		"index.md":     "# Home\n",
		"blog/post.md": "---\ntitle: Post\n---\nHello\n",
		"blog/bad.md":  "---\nlayout: gone.html\n---\nBad\n",
		"logo.svg":     "<svg/>",
	})
	layoutsDir = testutils.WriteTree(t, map[string]string{
		"index.html": "<html>{{ body }}</html>",
	})
	return contentDir, layoutsDir
}

func TestBuildCmd_Run(t *testing.T) {
	contentDir, layoutsDir := site(t)
	out := filepath.Join(t.TempDir(), "site")
	metricsFile := filepath.Join(t.TempDir(), "prom", "pagemill.prom")

	var stdout bytes.Buffer
	g := NewGlobal(&stdout, io.Discard)
	cmd := &BuildCmd{
		SourceFlags: SourceFlags{Content: contentDir, Layouts: layoutsDir},
		Output:      out,
		MetricsFile: metricsFile,
	}

	require.NoError(t, cmd.Run(g, &CLI{}))

	testutils.NewFileAssertions(t, out).
		AssertFiles("index.html", "blog/post/index.html", "logo.svg").
		AssertFileContains("index.html", "<html><h1>Home</h1>")

	printed := stdout.String()
	assert.Contains(t, printed, "Error rendering template blog/bad.md:")
	assert.Contains(t, printed, "Compiled 3 pages, wrote 2, copied 1 assets (partial)")
	assert.Contains(t, printed, "Output files at ")

	// #nosec G304 -- test path
	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `pagemill_build_outcomes_total{outcome="partial"} 1`)
	assert.Contains(t, string(prom), `pagemill_items_total{event="rendered"} 2`)
}

func TestBuildCmd_UnknownThemeIsFatal(t *testing.T) {
	contentDir, layoutsDir := site(t)
	cmd := &BuildCmd{
		SourceFlags: SourceFlags{Content: contentDir, Layouts: layoutsDir, Theme: "no-such-style"},
		Output:      t.TempDir(),
	}

	err := cmd.Run(NewGlobal(io.Discard, io.Discard), &CLI{})
	require.Error(t, err)
	assert.True(t, ferrors.IsFatal(err))
	assert.Equal(t, 9, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestBuildCmd_ConfigFileAndOverrides(t *testing.T) {
	contentDir, layoutsDir := site(t)
	cfgOut := filepath.Join(t.TempDir(), "from-config")
	flagOut := filepath.Join(t.TempDir(), "from-flag")
	cfgPath := filepath.Join(t.TempDir(), "pagemill.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"paths:\n  output: "+cfgOut+"\n  content: "+contentDir+"\n  layouts: "+layoutsDir+"\n"), 0o644))

	g := NewGlobal(io.Discard, io.Discard)
	require.NoError(t, (&BuildCmd{}).Run(g, &CLI{Config: cfgPath}))
	testutils.NewFileAssertions(t, cfgOut).AssertFileExists("index.html")

	require.NoError(t, (&BuildCmd{Output: flagOut}).Run(g, &CLI{Config: cfgPath}))
	testutils.NewFileAssertions(t, flagOut).AssertFileExists("index.html")
}

func TestBuildCmd_MissingExplicitConfig(t *testing.T) {
	err := (&BuildCmd{}).Run(NewGlobal(io.Discard, io.Discard), &CLI{Config: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestListCmd_Run(t *testing.T) {
	contentDir, layoutsDir := site(t)
	var stdout bytes.Buffer
	g := NewGlobal(&stdout, io.Discard)

	cmd := &ListCmd{SourceFlags: SourceFlags{Content: contentDir, Layouts: layoutsDir}}
	require.NoError(t, cmd.Run(g, &CLI{}))

	printed := stdout.String()
	assert.Contains(t, printed, "PATH")
	assert.Regexp(t, `blog/bad\.md\s+/blog/bad\s+blog\s+gone\.html \(missing\)`, printed)
	assert.Regexp(t, `blog/post\.md\s+/blog/post\s+blog\s+index\.html\n`, printed)
	assert.Regexp(t, `index\.md\s+/\s+default\s+index\.html\n`, printed)
	assert.Contains(t, printed, "3 pages, 1 files skipped")
	assert.Contains(t, printed, "Layouts from "+layoutsDir+" (1), content extensions: html, md")
}

func TestInitCmd_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagemill.yaml")
	var stdout bytes.Buffer
	g := NewGlobal(&stdout, io.Discard)

	require.NoError(t, (&InitCmd{}).Run(g, &CLI{Config: path}))
	assert.Contains(t, stdout.String(), "initialized successfully")
	testutils.NewFileAssertions(t, filepath.Dir(path)).AssertFileContains("pagemill.yaml", "theme: github")

	err := (&InitCmd{}).Run(g, &CLI{Config: path})
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Initialization failed")

	require.NoError(t, (&InitCmd{Force: true}).Run(g, &CLI{Config: path}))
}

func TestConfigureLogging(t *testing.T) {
	var stderr bytes.Buffer
	g := NewGlobal(io.Discard, &stderr)

	(&CLI{LogFormat: "json", Verbose: true}).configureLogging(g, nil)
	g.Logger.Debug("hello")
	assert.Contains(t, stderr.String(), `"msg":"hello"`)
}
