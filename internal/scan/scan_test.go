package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# x\n\ny\n"), 0o644))
}

func TestScan_CollectsMatchingFilesDepthFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.mdx"))
	writeFile(t, filepath.Join(root, "a", "nested.mdx"))
	writeFile(t, filepath.Join(root, "a", "zz.mdx"))
	writeFile(t, filepath.Join(root, "c.txt"))

	paths, err := Scan(root, ".mdx")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a", "nested.mdx"),
		filepath.Join(root, "a", "zz.mdx"),
		filepath.Join(root, "b.mdx"),
	}, paths)
}

func TestScan_ExtensionMatchIsCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "upper.MDX"))
	writeFile(t, filepath.Join(root, "lower.mdx"))

	paths, err := Scan(root, ".mdx")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "lower.mdx")}, paths)
}

func TestScan_EmptyTree_ReturnsEmptySlice(t *testing.T) {
	paths, err := Scan(t.TempDir(), ".mdx")
	require.NoError(t, err)
	require.NotNil(t, paths)
	require.Empty(t, paths)
}

func TestScan_UnreadableRoot_Fails(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"), ".mdx")
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryScan))
}

func TestScan_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "z.mdx"))
	writeFile(t, filepath.Join(root, "m", "a.mdx"))
	writeFile(t, filepath.Join(root, "a.mdx"))

	first, err := Scan(root, ".mdx")
	require.NoError(t, err)
	second, err := Scan(root, ".mdx")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
