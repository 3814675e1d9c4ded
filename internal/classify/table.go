package classify

import (
	"fmt"
	"slices"
	"strings"

	"mia/internal/textutil"
)

// Category is a named bucket of extensions.
type Category struct {
	Name       string   `toml:"name" yaml:"name"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// Table is an ordered category table. The zero value is an empty table.
type Table struct {
	categories []Category
}

// DefaultTable returns the built-in category table.
func DefaultTable() *Table {
	t, err := NewTable(
		Category{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif"}},
		Category{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".xlsx", ".csv"}},
		Category{Name: "Music", Extensions: []string{".mp3", ".wav", ".flac"}},
		Category{Name: "Videos", Extensions: []string{".mp4", ".mkv", ".mov"}},
		Category{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz"}},
		Category{Name: "Code", Extensions: []string{".py", ".js", ".ts", ".html", ".css", ".ipynb"}},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable builds a table from categories in the given order. Extensions are
// normalized to lowercase with a leading dot. Names must be usable as folder
// names and unique.
func NewTable(categories ...Category) (*Table, error) {
	t := &Table{categories: make([]Category, 0, len(categories))}
	seen := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if !textutil.IsSafeFolderName(name) {
			return nil, fmt.Errorf("category name %q is not a valid folder name", cat.Name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("category %q declared twice", name)
		}
		seen[name] = struct{}{}
		exts := NormalizeExtensions(cat.Extensions)
		if len(exts) == 0 {
			return nil, fmt.Errorf("category %q has no extensions", name)
		}
		t.categories = append(t.categories, Category{Name: name, Extensions: exts})
	}
	return t, nil
}

// Categories returns a copy of the table's categories in lookup order.
func (t *Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, cat := range t.categories {
		out[i] = Category{Name: cat.Name, Extensions: slices.Clone(cat.Extensions)}
	}
	return out
}

// Len returns the number of categories.
func (t *Table) Len() int {
	return len(t.categories)
}

// Lookup returns the first category containing ext. ext must already be
// lowercase and dotted, as returned by Extension.
func (t *Table) Lookup(ext string) (string, bool) {
	if ext == "" {
		return "", false
	}
	for _, cat := range t.categories {
		if slices.Contains(cat.Extensions, ext) {
			return cat.Name, true
		}
	}
	return "", false
}

// Merge returns a new table combining t with overrides. With replace set the
// overrides alone form the table. Otherwise an override with an existing name
// replaces that category's extensions in place, new names are appended, and
// extensions claimed by an override are removed from every other category so
// the override wins regardless of position.
func (t *Table) Merge(overrides []Category, replace bool) (*Table, error) {
	if replace {
		return NewTable(overrides...)
	}
	if len(overrides) == 0 {
		return t, nil
	}

	normalized := make([]Category, 0, len(overrides))
	claimed := map[string]string{}
	for _, o := range overrides {
		cat := Category{Name: strings.TrimSpace(o.Name), Extensions: NormalizeExtensions(o.Extensions)}
		normalized = append(normalized, cat)
		for _, ext := range cat.Extensions {
			claimed[ext] = cat.Name
		}
	}

	merged := t.Categories()
	for _, o := range normalized {
		idx := slices.IndexFunc(merged, func(c Category) bool { return c.Name == o.Name })
		if idx >= 0 {
			merged[idx].Extensions = o.Extensions
			continue
		}
		merged = append(merged, o)
	}
	for i := range merged {
		merged[i].Extensions = slices.DeleteFunc(merged[i].Extensions, func(ext string) bool {
			owner, ok := claimed[ext]
			return ok && owner != merged[i].Name
		})
	}
	merged = slices.DeleteFunc(merged, func(c Category) bool { return len(c.Extensions) == 0 })
	return NewTable(merged...)
}

// NormalizeExtensions lowercases each extension, adds the leading dot, and
// drops blanks and repeats. First-seen order is kept.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" || normalized == "." {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if !slices.Contains(out, normalized) {
			out = append(out, normalized)
		}
	}
	return out
}
