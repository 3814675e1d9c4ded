package classify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mia/internal/classify"
)

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"a.png":          ".png",
		"REPORT.PDF":     ".pdf",
		"archive.tar.gz": ".gz",
		"noext":          "",
		".bashrc":        "",
		"trailing.":      "",
		"dir/file.Txt":   ".txt",
		"..hidden.py":    ".py",
	}
	for name, want := range cases {
		assert.Equal(t, want, classify.Extension(name), name)
	}
}

func TestClassifyDefaultTable(t *testing.T) {
	c := classify.New(nil)

	cases := []struct {
		name     string
		category string
		ok       bool
	}{
		{"photo.JPG", "Images", true},
		{"b.txt", "Documents", true},
		{"song.flac", "Music", true},
		{"clip.mkv", "Videos", true},
		{"backup.tar.gz", "Archives", true},
		{"notebook.ipynb", "Code", true},
		{"c.xyz", "", false},
		{".bashrc", "", false},
		{"Makefile", "", false},
	}
	for _, tc := range cases {
		category, ok := c.Classify(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.category, category, tc.name)
	}
}

func TestDefaultTableOrder(t *testing.T) {
	var names []string
	for _, cat := range classify.DefaultTable().Categories() {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{"Images", "Documents", "Music", "Videos", "Archives", "Code"}, names)
}

func TestFirstCategoryWins(t *testing.T) {
	table, err := classify.NewTable(
		classify.Category{Name: "First", Extensions: []string{"dat"}},
		classify.Category{Name: "Second", Extensions: []string{".DAT"}},
	)
	require.NoError(t, err)

	category, ok := classify.New(table).Classify("x.dat")
	require.True(t, ok)
	assert.Equal(t, "First", category)
}

func TestNewTableRejectsInvalidCategories(t *testing.T) {
	_, err := classify.NewTable(classify.Category{Name: "..", Extensions: []string{".a"}})
	assert.Error(t, err)

	_, err = classify.NewTable(classify.Category{Name: "Empty"})
	assert.Error(t, err)

	_, err = classify.NewTable(
		classify.Category{Name: "Dup", Extensions: []string{".a"}},
		classify.Category{Name: "Dup", Extensions: []string{".b"}},
	)
	assert.Error(t, err)
}

func TestCategoriesReturnsCopy(t *testing.T) {
	table := classify.DefaultTable()
	cats := table.Categories()
	cats[0].Extensions[0] = ".bogus"

	category, ok := classify.New(table).Classify("a.jpg")
	require.True(t, ok)
	assert.Equal(t, "Images", category)
}

func TestMergeOverridesAndAppends(t *testing.T) {
	merged, err := classify.DefaultTable().Merge([]classify.Category{
		{Name: "Images", Extensions: []string{".webp"}},
		{Name: "Ebooks", Extensions: []string{".epub", ".pdf"}},
	}, false)
	require.NoError(t, err)

	c := classify.New(merged)

	_, ok := c.Classify("a.jpg")
	assert.False(t, ok, "overridden category drops its old extensions")

	category, ok := c.Classify("a.webp")
	require.True(t, ok)
	assert.Equal(t, "Images", category)

	category, ok = c.Classify("book.pdf")
	require.True(t, ok)
	assert.Equal(t, "Ebooks", category, "override claims extension from earlier category")

	category, ok = c.Classify("notes.txt")
	require.True(t, ok)
	assert.Equal(t, "Documents", category)

	cats := merged.Categories()
	assert.Equal(t, "Images", cats[0].Name)
	assert.Equal(t, "Ebooks", cats[len(cats)-1].Name)
}

func TestMergeReplace(t *testing.T) {
	merged, err := classify.DefaultTable().Merge([]classify.Category{
		{Name: "Pics", Extensions: []string{".png"}},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, merged.Len())

	_, ok := classify.New(merged).Classify("a.txt")
	assert.False(t, ok)
}

func TestLoadFileTOMLAndYAML(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "cats.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[[categories]]
name = "Ebooks"
extensions = [".epub", "mobi"]

[[categories]]
name = "Fonts"
extensions = [".ttf"]
`), 0o644))

	cats, err := classify.LoadFile(tomlPath)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Ebooks", cats[0].Name)
	assert.Equal(t, []string{".epub", "mobi"}, cats[0].Extensions)
	assert.Equal(t, "Fonts", cats[1].Name)

	yamlPath := filepath.Join(dir, "cats.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
categories:
  - name: Ebooks
    extensions: [.epub]
`), 0o644))

	cats, err = classify.LoadFile(yamlPath)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Ebooks", cats[0].Name)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := classify.Parse(".json", []byte(`{}`))
	assert.Error(t, err)

	_, err = classify.Parse(".toml", []byte(`unknown = 1`))
	assert.Error(t, err)

	_, err = classify.Parse(".yaml", []byte("categories: []\n"))
	assert.Error(t, err)

	_, err = classify.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestNormalizeExtensions(t *testing.T) {
	got := classify.NormalizeExtensions([]string{"JPG", ".png", "", ".", "jpg", " .Gif "})
	assert.Equal(t, []string{".jpg", ".png", ".gif"}, got)
}
