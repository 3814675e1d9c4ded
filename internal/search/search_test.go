package search_test

import (
	"testing"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"mia/internal/fserr"
	"mia/internal/listing"
	"mia/internal/search"
	"mia/internal/testsupport"
)

func run(fsys afero.Fs, root, pattern string, opts search.Options) search.Result {
	s := search.New(listing.New(fsys, listing.Options{IncludeHidden: true}), opts, nil)
	return search.Collect(s.Search(root, pattern))
}

func paths(res search.Result) []string {
	out := make([]string, 0, len(res.Matches))
	for _, m := range res.Matches {
		out = append(out, m.Path)
	}
	return out
}

func TestSearchFindsCaseInsensitiveSubstring(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/r", "app.log", "logs/", "logs/old.log", "readme.md")

	res := run(fsys, "/r", "log", search.Options{})
	require.Empty(t, res.Errors)
	assert.ElementsMatch(t, []string{"/r/app.log", "/r/logs", "/r/logs/old.log"}, paths(res))
	assert.Equal(t, 3, res.Count())

	upper := run(fsys, "/r", "LOG", search.Options{})
	assert.ElementsMatch(t, paths(res), paths(upper))
}

func TestSearchEmptyPatternMatchesEverything(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/r", "a/", "a/b/", "a/b/c.txt", ".hidden", "d.txt")

	res := run(fsys, "/r", "", search.Options{})
	require.Empty(t, res.Errors)
	assert.Equal(t, 5, res.Count())
}

func TestSearchReportsMatchKinds(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/r", "Build/", "build.sh")

	res := run(fsys, "/r", "build", search.Options{})
	require.Len(t, res.Matches, 2)
	assert.Equal(t, listing.KindDir, res.Matches[0].Kind)
	assert.Equal(t, "Build", res.Matches[0].Name)
	assert.Equal(t, listing.KindFile, res.Matches[1].Kind)
}

func TestSearchContinuesPastUnreadableDirectory(t *testing.T) {
	base := testsupport.NewMemTree(t, "/r", "a/", "a/log.txt", "locked/", "locked/log.txt", "z/", "z/catalog")
	fsys := testsupport.NewFaultFs(base).DenyOpen("/r/locked", unix.EACCES)

	res := run(fsys, "/r", "log", search.Options{})
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Errors[0], fserr.ErrPermissionDenied)
	assert.ElementsMatch(t, []string{"/r/a/log.txt", "/r/z/catalog"}, paths(res))
}

func TestSearchMissingRoot(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/r")
	res := run(fsys, "/r/missing", "x", search.Options{})
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Errors[0], fserr.ErrNotFound)
	assert.Zero(t, res.Count())
}

func TestSearchHonoursExcludes(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/r", ".git/", ".git/config", "config/", "config/app.yaml", "config.bak")
	opts := search.Options{Exclude: ignore.CompileIgnoreLines(".git", "*.bak")}

	res := run(fsys, "/r", "config", opts)
	assert.ElementsMatch(t, []string{"/r/config"}, paths(res))
}

func TestSearchStopsEarly(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/r", "a1", "a2", "a3")
	s := search.New(listing.New(fsys, listing.Options{}), search.Options{}, nil)

	seen := 0
	for range s.Search("/r", "a") {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestSearchRestartsPerCall(t *testing.T) {
	fsys := testsupport.NewMemTree(t, "/r", "x1", "x2")
	s := search.New(listing.New(fsys, listing.Options{}), search.Options{}, nil)
	seq := s.Search("/r", "x")

	assert.Equal(t, 2, search.Collect(seq).Count())
	assert.Equal(t, 2, search.Collect(seq).Count())
}
