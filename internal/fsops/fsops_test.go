package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"mia/internal/fserr"
	"mia/internal/testsupport"
)

func TestWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	wd, err := WorkingDir()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMakeDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	ops := New(fsys, nil)

	require.NoError(t, ops.MakeDir("/a/b/c"))
	isDir, err := afero.IsDir(fsys, "/a/b/c")
	require.NoError(t, err)
	assert.True(t, isDir)

	require.NoError(t, ops.MakeDir("/a/b/c"), "existing directory is fine")

	require.NoError(t, afero.WriteFile(fsys, "/a/file", []byte("x"), 0o644))
	assert.ErrorIs(t, ops.MakeDir("/a/file"), fserr.ErrDestinationConflict)
}

func TestRenameFile(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/w", "notes.txt")
	ops := New(fsys, nil)

	require.NoError(t, ops.Rename("/w/notes.txt", "/w/archive/2024/notes.txt", false))

	ok, _ := afero.Exists(fsys, "/w/archive/2024/notes.txt")
	assert.True(t, ok)
	ok, _ = afero.Exists(fsys, "/w/notes.txt")
	assert.False(t, ok)
}

func TestRenameConflict(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/w", "a.txt", "b.txt")
	require.NoError(t, afero.WriteFile(fsys, "/w/a.txt", []byte("a"), 0o644))
	ops := New(fsys, nil)

	err := ops.Rename("/w/a.txt", "/w/b.txt", false)
	assert.ErrorIs(t, err, fserr.ErrDestinationConflict)

	require.NoError(t, ops.Rename("/w/a.txt", "/w/b.txt", true))
	data, err := afero.ReadFile(fsys, "/w/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestRenameForceKeepsNonEmptyDirectories(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/w", "a.txt", "photos/", "photos/1.jpg", "photos/2.jpg", "src/", "src/x.txt")
	ops := New(fsys, nil)

	err := ops.Rename("/w/a.txt", "/w/photos", true)
	assert.ErrorIs(t, err, fserr.ErrDestinationConflict)
	err = ops.Rename("/w/src", "/w/photos", true)
	assert.ErrorIs(t, err, fserr.ErrDestinationConflict)
	err = ops.Rename("/w/src", "/w/a.txt", true)
	assert.ErrorIs(t, err, fserr.ErrDestinationConflict)

	for _, path := range []string{"/w/a.txt", "/w/photos/1.jpg", "/w/photos/2.jpg", "/w/src/x.txt"} {
		ok, err := afero.Exists(fsys, path)
		require.NoError(t, err)
		assert.True(t, ok, path)
	}
}

func TestRenameForceReplacesEmptyDirectory(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/w", "src/", "src/x.txt", "empty/")
	ops := New(fsys, nil)

	require.NoError(t, ops.Rename("/w/src", "/w/empty", true))

	ok, _ := afero.Exists(fsys, "/w/empty/x.txt")
	assert.True(t, ok)
	ok, _ = afero.Exists(fsys, "/w/src")
	assert.False(t, ok)
}

func TestRenameMissingSource(t *testing.T) {
	ops := New(afero.NewMemMapFs(), nil)
	assert.ErrorIs(t, ops.Rename("/nope", "/dst", false), fserr.ErrNotFound)
}

func TestRenameRejectsNesting(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/w", "dir/", "dir/inner/")
	ops := New(fsys, nil)

	assert.ErrorIs(t, ops.Rename("/w/dir", "/w/dir/inner/dir", false), fserr.ErrInvalidInput)
	assert.ErrorIs(t, ops.Rename("/w/dir/inner", "/w/dir", true), fserr.ErrInvalidInput)

	ok, _ := afero.Exists(fsys, "/w/dir/inner")
	assert.True(t, ok)
}

func TestRenameDirectoryCrossDevice(t *testing.T) {
	base := testsupport.NewMemTree(t, "/w", "photos/", "photos/a.png", "photos/raw/b.cr2")
	fsys := testsupport.NewFaultFs(base).DenyRename("/w/photos", unix.EXDEV)
	ops := New(fsys, nil)

	require.NoError(t, ops.Rename("/w/photos", "/mnt/photos", false))

	ok, _ := afero.Exists(base, "/mnt/photos/raw/b.cr2")
	assert.True(t, ok)
	ok, _ = afero.Exists(base, "/mnt/photos/a.png")
	assert.True(t, ok)
	ok, _ = afero.Exists(base, "/w/photos")
	assert.False(t, ok)
}

func TestRenameDirectoryCrossDeviceOnHost(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "f.txt"), []byte("hi"), 0o644))

	fsys := testsupport.NewFaultFs(afero.NewOsFs()).DenyRename(src, unix.EXDEV)
	ops := New(fsys, nil)
	dst := filepath.Join(root, "dst")

	require.NoError(t, ops.Rename(src, dst, false))

	data, err := os.ReadFile(filepath.Join(dst, "nested", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestIsWithin(t *testing.T) {
	assert.True(t, isWithin("/a/b", "/a"))
	assert.True(t, isWithin("/a", "/a"))
	assert.False(t, isWithin("/ab", "/a"))
	assert.False(t, isWithin("/", "/a"))
	assert.False(t, isWithin("/a/..b", "/b"))
}
