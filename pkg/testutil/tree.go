package testutil

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/stretchr/testify/require"
)

// WriteTree creates files under root. Keys are slash-separated relative
// paths; a key ending in "/" creates an empty directory.
func WriteTree(t testing.TB, fsys types.FS, root string, files map[string]string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(root, 0755))
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fsys.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
}

// ReadTree returns every file under root keyed by slash-separated relative
// path. Empty directories appear with a trailing "/" and empty content.
func ReadTree(t testing.TB, fsys types.FS, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	readTree(t, fsys, root, "", out)
	return out
}

func readTree(t testing.TB, fsys types.FS, dir, rel string, out map[string]string) {
	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	if len(entries) == 0 && rel != "" {
		out[rel+"/"] = ""
	}
	for _, e := range entries {
		childRel := e.Name()
		if rel != "" {
			childRel = rel + "/" + e.Name()
		}
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			readTree(t, fsys, path, childRel, out)
			continue
		}
		data, err := fsys.ReadFile(path)
		require.NoError(t, err)
		out[childRel] = string(data)
	}
}

// Exists reports whether path exists on fsys
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// FileMode returns the permission bits of path
func FileMode(t testing.TB, fsys types.FS, path string) fs.FileMode {
	t.Helper()
	info, err := fsys.Stat(path)
	require.NoError(t, err)
	return info.Mode().Perm()
}
