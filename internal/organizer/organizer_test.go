package organizer_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"mia/internal/classify"
	"mia/internal/fserr"
	"mia/internal/organizer"
	"mia/internal/testsupport"
)

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	return ok
}

func TestOrganizeScenario(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/d", "a.png", "b.txt", "c.xyz", "sub/", "sub/inner.png")
	org := organizer.New(fsys, classify.New(nil), nil)

	result, err := org.Organize(context.Background(), "/d", organizer.Options{OtherBucket: "Other", Verbose: true})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Moved)
	assert.Empty(t, result.Failures)
	assert.True(t, exists(t, fsys, "/d/Images/a.png"))
	assert.True(t, exists(t, fsys, "/d/Documents/b.txt"))
	assert.True(t, exists(t, fsys, "/d/Other/c.xyz"))
	assert.True(t, exists(t, fsys, "/d/sub/inner.png"), "subdirectories are never entered")
	assert.False(t, exists(t, fsys, "/d/a.png"))

	require.Len(t, result.Moves, 3)
	assert.Equal(t, organizer.Move{Name: "a.png", Category: "Images", Target: "/d/Images/a.png"}, result.Moves[0])
	assert.Equal(t, "Documents", result.Moves[1].Category)
	assert.Equal(t, "Other", result.Moves[2].Category)
}

func TestOrganizeIsIdempotent(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/d", "a.png", "b.txt", "c.xyz", "sub/")
	org := organizer.New(fsys, nil, nil)
	opts := organizer.Options{OtherBucket: "Other"}

	first, err := org.Organize(context.Background(), "/d", opts)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Moved)

	second, err := org.Organize(context.Background(), "/d", opts)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Moved)
	assert.Empty(t, second.Failures)
}

func TestOrganizeWithoutBucketSkipsUncategorized(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/d", "a.png", "c.xyz", ".bashrc", "Makefile")
	org := organizer.New(fsys, nil, nil)

	result, err := org.Organize(context.Background(), "/d", organizer.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Moved)
	assert.Equal(t, 3, result.Skipped)
	assert.Nil(t, result.Moves, "moves are only recorded when verbose")
	assert.True(t, exists(t, fsys, "/d/c.xyz"))
	assert.True(t, exists(t, fsys, "/d/.bashrc"))
	assert.False(t, exists(t, fsys, "/d/Other"))
}

func TestOrganizeUsesInjectedTable(t *testing.T) {
	table, err := classify.NewTable(classify.Category{Name: "Data", Extensions: []string{".xyz"}})
	require.NoError(t, err)
	fsys := testsupport.NewMemTree(t, "/d", "c.xyz", "a.png")

	result, err := organizer.New(fsys, classify.New(table), nil).Organize(context.Background(), "/d", organizer.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Moved)
	assert.True(t, exists(t, fsys, "/d/Data/c.xyz"))
	assert.True(t, exists(t, fsys, "/d/a.png"))
}

func TestOrganizeConflictPolicies(t *testing.T) {
	setup := func(t *testing.T) afero.Fs {
		fsys := testsupport.NewMemTree(t, "/d", "a.png", "Images/", "Images/a.png", "Images/a (1).png")
		require.NoError(t, afero.WriteFile(fsys, "/d/a.png", []byte("new"), 0o644))
		require.NoError(t, afero.WriteFile(fsys, "/d/Images/a.png", []byte("old"), 0o644))
		return fsys
	}

	t.Run("skip", func(t *testing.T) {
		fsys := setup(t)
		result, err := organizer.New(fsys, nil, nil).Organize(context.Background(), "/d", organizer.Options{})
		require.NoError(t, err)

		assert.Equal(t, 0, result.Moved)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "a.png", result.Failures[0].Name)
		assert.ErrorIs(t, result.Failures[0].Err, fserr.ErrDestinationConflict)
		assert.True(t, exists(t, fsys, "/d/a.png"))
	})

	t.Run("overwrite", func(t *testing.T) {
		fsys := setup(t)
		result, err := organizer.New(fsys, nil, nil).Organize(context.Background(), "/d",
			organizer.Options{OnConflict: organizer.ConflictOverwrite})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Moved)
		data, err := afero.ReadFile(fsys, "/d/Images/a.png")
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		assert.False(t, exists(t, fsys, "/d/a.png"))
	})

	t.Run("rename", func(t *testing.T) {
		fsys := setup(t)
		result, err := organizer.New(fsys, nil, nil).Organize(context.Background(), "/d",
			organizer.Options{OnConflict: organizer.ConflictRename, Verbose: true})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Moved)
		require.Len(t, result.Moves, 1)
		assert.Equal(t, "/d/Images/a (2).png", result.Moves[0].Target)
		data, err := afero.ReadFile(fsys, "/d/Images/a.png")
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
	})
}

func TestOrganizeCategoryFolderIsFile(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/d", "Other", "c.xyz")
	result, err := organizer.New(fsys, nil, nil).Organize(context.Background(), "/d", organizer.Options{OtherBucket: "Other"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Moved)
	require.Len(t, result.Failures, 2)
	for _, failure := range result.Failures {
		assert.ErrorIs(t, failure.Err, fserr.ErrDestinationConflict)
	}
	assert.True(t, exists(t, fsys, "/d/Other"))
	assert.True(t, exists(t, fsys, "/d/c.xyz"))
}

func TestOrganizeContinuesAfterMoveFailure(t *testing.T) {
	base := testsupport.NewMemTree(t, "/d", "a.png", "b.txt")
	fsys := testsupport.NewFaultFs(base).DenyRename("/d/a.png", unix.EACCES)

	result, err := organizer.New(fsys, nil, nil).Organize(context.Background(), "/d", organizer.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Moved)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "a.png", result.Failures[0].Name)
	assert.ErrorIs(t, result.Failures[0].Err, fserr.ErrPermissionDenied)
	assert.True(t, exists(t, base, "/d/Documents/b.txt"))
}

func TestOrganizeMissingDirectory(t *testing.T) {
	_, err := organizer.New(afero.NewMemMapFs(), nil, nil).Organize(context.Background(), "/missing", organizer.Options{})
	assert.ErrorIs(t, err, fserr.ErrNotFound)
}

func TestOrganizeRejectsInvalidOptions(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/d", "a.png")
	org := organizer.New(fsys, nil, nil)

	_, err := org.Organize(context.Background(), "/d", organizer.Options{OtherBucket: "../x"})
	assert.ErrorIs(t, err, fserr.ErrInvalidInput)

	_, err = org.Organize(context.Background(), "/d", organizer.Options{OnConflict: "merge"})
	assert.ErrorIs(t, err, fserr.ErrInvalidInput)

	assert.True(t, exists(t, fsys, "/d/a.png"))
}

func TestOrganizeHonorsCancellation(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/d", "a.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := organizer.New(fsys, nil, nil).Organize(ctx, "/d", organizer.Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, exists(t, fsys, "/d/a.png"))
}

func TestOrganizeReturnsPartialResultOnCancel(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/d", "a.png", "b.txt", "c.mp3")
	ctx := testsupport.CancelAfter(context.Background(), 1)

	result, err := organizer.New(fsys, nil, nil).Organize(ctx, "/d", organizer.Options{Verbose: true})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, result.Moved)
	require.Len(t, result.Moves, 1)
	assert.Equal(t, "a.png", result.Moves[0].Name)
	assert.True(t, exists(t, fsys, "/d/Images/a.png"))
	assert.True(t, exists(t, fsys, "/d/b.txt"))
}

func TestParseConflictPolicy(t *testing.T) {
	policy, err := organizer.ParseConflictPolicy("")
	require.NoError(t, err)
	assert.Equal(t, organizer.ConflictSkip, policy)

	policy, err = organizer.ParseConflictPolicy(" Rename ")
	require.NoError(t, err)
	assert.Equal(t, organizer.ConflictRename, policy)

	_, err = organizer.ParseConflictPolicy("merge")
	assert.Error(t, err)
}
