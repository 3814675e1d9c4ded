package listing

import (
	"os"
	"slices"

	"github.com/spf13/afero"

	"mia/internal/fserr"
)

// Options controls which entries a Lister returns.
type Options struct {
	IncludeHidden bool
}

// Lister reads directories from a filesystem.
type Lister struct {
	fs   afero.Fs
	opts Options
}

// New returns a Lister over fsys. A nil fsys uses the host filesystem.
func New(fsys afero.Fs, opts Options) *Lister {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Lister{fs: fsys, opts: opts}
}

// Fs returns the filesystem the lister reads from.
func (l *Lister) Fs() afero.Fs {
	return l.fs
}

// List returns the immediate children of dir sorted by Compare. Missing or
// unreadable directories are reported as fserr.ErrNotFound or
// fserr.ErrPermissionDenied.
func (l *Lister) List(dir string) ([]Entry, error) {
	info, err := l.fs.Stat(dir)
	if err != nil {
		return nil, fserr.Wrap(nil, "listing", "stat", dir, err)
	}
	if !info.IsDir() {
		return nil, fserr.Wrap(fserr.ErrNotDirectory, "listing", "read directory", dir, nil)
	}

	infos, err := l.readDir(dir)
	if err != nil {
		return nil, fserr.Wrap(nil, "listing", "read directory", dir, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		entry := l.entryFor(dir, fi)
		if !l.opts.IncludeHidden && entry.Hidden() {
			continue
		}
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, Compare)
	return entries, nil
}

func (l *Lister) readDir(dir string) ([]os.FileInfo, error) {
	f, err := l.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdir(-1)
}

func (l *Lister) entryFor(dir string, fi os.FileInfo) Entry {
	entry := Entry{
		Name:    fi.Name(),
		Parent:  dir,
		Kind:    kindOf(fi.Mode()),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		entry.Symlink = true
		entry.Kind = KindOther
		if target, err := l.fs.Stat(entry.Path()); err == nil {
			entry.Kind = kindOf(target.Mode())
			entry.Size = target.Size()
		}
	}
	return entry
}

func kindOf(mode os.FileMode) Kind {
	switch {
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}
