package output

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagemill/internal/testutil/testutils"
)

func TestStaticCopier_CopiesNonContentFiles(t *testing.T) {
	src := testutils.WriteTree(t, map[string]string{
		"index.md":           "# home",
		"about/index.html":   "<p>about</p>",
		"style.css":          "body{}",
		"img/logo.png":       "\x89PNG\r\n\x1a\n",
		"img/.DS_Store":      "junk",
		"archive.tar.gz":     "gz",
		"notes/draft.md.bak": "bak",
	})
	out := t.TempDir()

	res, err := NewStaticCopier(src, out, exts).Copy()
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	require.Equal(t, []string{"archive.tar.gz", "img/logo.png", "notes/draft.md.bak", "style.css"}, res.Copied)

	testutils.NewFileAssertions(t, out).
		AssertFiles("archive.tar.gz", "img/logo.png", "notes/draft.md.bak", "style.css").
		AssertFileEquals("img/logo.png", "\x89PNG\r\n\x1a\n").
		AssertFileEquals("style.css", "body{}")
}

func TestStaticCopier_PreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on windows")
	}
	src := testutils.WriteTree(t, map[string]string{"bin/run.sh": "#!/bin/sh\n"})
	require.NoError(t, os.Chmod(filepath.Join(src, "bin", "run.sh"), 0o755))
	out := t.TempDir()

	_, err := NewStaticCopier(src, out, exts).Copy()
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(out, "bin", "run.sh"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestStaticCopier_FailureDoesNotStopOtherCopies(t *testing.T) {
	src := testutils.WriteTree(t, map[string]string{
		"a.css":        "a",
		"blocked/b.js": "b",
		"c.txt":        "c",
	})
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "blocked"), []byte("file in the way"), 0o644))

	res, err := NewStaticCopier(src, out, exts).Copy()
	require.NoError(t, err)
	require.Len(t, res.Failures, 1)
	require.Equal(t, "blocked/b.js", res.Failures[0].Path)
	require.Equal(t, []string{"a.css", "c.txt"}, res.Copied)
}

func TestStaticCopier_OverwritesExisting(t *testing.T) {
	src := testutils.WriteTree(t, map[string]string{"a.txt": "new"})
	out := testutils.WriteTree(t, map[string]string{"a.txt": "old and longer"})

	_, err := NewStaticCopier(src, out, exts).Copy()
	require.NoError(t, err)
	testutils.NewFileAssertions(t, out).AssertFileEquals("a.txt", "new")
}
