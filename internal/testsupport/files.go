package testsupport

import (
	"bytes"
	"path"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// WriteFile fills name with size bytes of a repeating pattern. A size <= 0
// writes a single byte. Parent directories are created as needed.
func WriteFile(t testing.TB, fsys afero.Fs, name string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	require.NoError(t, fsys.MkdirAll(path.Dir(name), 0o755), "mkdir for %s", name)
	require.NoError(t, afero.WriteFile(fsys, name, bytes.Repeat([]byte{0x42}, int(size)), 0o644), "write %s", name)
}

// BuildTree creates a fixture tree below root. Entries ending in "/" become
// directories; every other entry becomes a small file. Entries use forward
// slashes relative to root.
func BuildTree(t testing.TB, fsys afero.Fs, root string, entries ...string) {
	t.Helper()

	require.NoError(t, fsys.MkdirAll(root, 0o755), "mkdir root %s", root)
	for _, entry := range entries {
		target := path.Join(root, strings.TrimSuffix(entry, "/"))
		if strings.HasSuffix(entry, "/") {
			require.NoError(t, fsys.MkdirAll(target, 0o755), "mkdir %s", target)
			continue
		}
		WriteFile(t, fsys, target, int64(len(entry)))
	}
}

// NewMemTree returns an in-memory filesystem populated by BuildTree.
func NewMemTree(t testing.TB, root string, entries ...string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	BuildTree(t, fsys, root, entries...)
	return fsys
}
