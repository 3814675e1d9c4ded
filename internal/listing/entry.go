package listing

import (
	"path/filepath"
	"strings"
	"time"

	"mia/internal/textutil"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindOther Kind = iota
	KindFile
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "other"
	}
}

// HiddenPrefix marks entries that are hidden unless explicitly requested.
const HiddenPrefix = "."

// Entry is a single child of a listed directory.
type Entry struct {
	Name    string
	Parent  string
	Kind    Kind
	Symlink bool
	Size    int64
	ModTime time.Time
}

// Path returns the entry's full path.
func (e Entry) Path() string {
	return filepath.Join(e.Parent, e.Name)
}

// DisplayName returns the name with a trailing slash for directories.
func (e Entry) DisplayName() string {
	if e.Kind == KindDir {
		return e.Name + "/"
	}
	return e.Name
}

// Hidden reports whether the entry name starts with HiddenPrefix.
func (e Entry) Hidden() bool {
	return strings.HasPrefix(e.Name, HiddenPrefix)
}

// Descendable reports whether traversals may recurse into the entry.
// Symlinked directories are listed but never entered.
func (e Entry) Descendable() bool {
	return e.Kind == KindDir && !e.Symlink
}

// Compare orders entries: non-files before plain files, then by case-folded
// name, then directories before other kinds, then by raw name.
func Compare(a, b Entry) int {
	aFile, bFile := a.Kind == KindFile, b.Kind == KindFile
	if aFile != bFile {
		if bFile {
			return -1
		}
		return 1
	}
	if c := textutil.CompareFold(a.Name, b.Name); c != 0 {
		return c
	}
	if a.Kind != b.Kind {
		if a.Kind == KindDir {
			return -1
		}
		if b.Kind == KindDir {
			return 1
		}
	}
	return strings.Compare(a.Name, b.Name)
}
