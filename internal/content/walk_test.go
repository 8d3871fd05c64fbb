package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalk_SkipsHiddenFilesAndDirectories(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.md":          "",
		".gitkeep":      "",
		"img/logo.png":  "",
		"img/.DS_Store": "",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	var seen []string
	err := Walk(root, func(f File, err error) error {
		require.NoError(t, err)
		seen = append(seen, f.Rel)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a.md", "img/logo.png"}, seen)
}

func TestWalk_FollowsSymlinkedFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"real.md": "x"})
	if err := os.Symlink(filepath.Join(root, "real.md"), filepath.Join(root, "link.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	var seen []string
	require.NoError(t, Walk(root, func(f File, _ error) error {
		seen = append(seen, f.Name())
		return nil
	}))
	require.Equal(t, []string{"link.md", "real.md"}, seen)
}

func TestWalk_MissingRoot(t *testing.T) {
	err := Walk(filepath.Join(t.TempDir(), "nope"), func(File, error) error { return nil })
	require.Error(t, err)
}
