// Package fsops implements the single-step filesystem commands: printing the
// working directory, creating directories, and renaming or moving entries.
package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"github.com/spf13/afero"

	"mia/internal/fileutil"
	"mia/internal/fserr"
	"mia/internal/logging"
)

// WorkingDir returns the process working directory.
func WorkingDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fserr.Wrap(nil, "fsops", "working directory", "", err)
	}
	return wd, nil
}

// Ops performs mutating operations on already-resolved absolute paths.
type Ops struct {
	fs       afero.Fs
	logger   *slog.Logger
	copyTree func(src, dst string) error
}

// New returns Ops over fsys. A nil fsys uses the host filesystem.
func New(fsys afero.Fs, logger *slog.Logger) *Ops {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	ops := &Ops{fs: fsys, logger: logging.NewComponentLogger(logger, "fsops")}
	if fsys.Name() == (&afero.OsFs{}).Name() {
		ops.copyTree = func(src, dst string) error {
			return copy.Copy(src, dst, copy.Options{PreserveTimes: true})
		}
	} else {
		ops.copyTree = func(src, dst string) error {
			return copyTreeFs(fsys, src, dst)
		}
	}
	return ops
}

// MakeDir creates path and any missing parents. An existing directory is not
// an error; an existing non-directory is a destination conflict.
func (o *Ops) MakeDir(path string) error {
	info, err := o.fs.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fserr.Wrap(fserr.ErrDestinationConflict, "fsops", "path exists and is not a directory", path, nil)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fserr.Wrap(nil, "fsops", "stat", path, err)
	}
	if err := o.fs.MkdirAll(path, 0o755); err != nil {
		return fserr.Wrap(nil, "fsops", "create directory", path, err)
	}
	o.logger.Debug("directory created", logging.String("path", path))
	return nil
}

// Rename moves src to dst, creating dst's parent directories. An existing dst
// is a destination conflict unless force is set, in which case it is replaced.
// Moves across filesystems fall back to copy and delete.
func (o *Ops) Rename(src, dst string, force bool) error {
	srcInfo, err := o.fs.Stat(src)
	if err != nil {
		return fserr.Wrap(nil, "fsops", "source", src, err)
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return nil
	}
	if srcInfo.IsDir() && isWithin(dst, src) {
		return fserr.Wrap(fserr.ErrInvalidInput, "fsops", "cannot move a directory into itself", dst, nil)
	}
	if isWithin(src, dst) {
		return fserr.Wrap(fserr.ErrInvalidInput, "fsops", "destination contains the source", dst, nil)
	}

	if dstInfo, err := o.fs.Stat(dst); err == nil {
		if !force {
			return fserr.Wrap(fserr.ErrDestinationConflict, "fsops", "destination exists (use --force to replace)", dst, nil)
		}
		if err := o.replaceable(srcInfo, dst, dstInfo); err != nil {
			return err
		}
		if err := o.fs.Remove(dst); err != nil {
			return fserr.Wrap(nil, "fsops", "replace destination", dst, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fserr.Wrap(nil, "fsops", "stat destination", dst, err)
	}

	if err := o.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fserr.Wrap(nil, "fsops", "create destination parent", filepath.Dir(dst), err)
	}

	if err := o.move(src, dst, srcInfo.IsDir()); err != nil {
		return fserr.Wrap(nil, "fsops", "rename", src, err)
	}
	o.logger.Debug("entry renamed", logging.String("src", src), logging.String("dst", dst))
	return nil
}

// replaceable reports whether force may remove dst: a file over a file, or a
// directory over an empty directory.
func (o *Ops) replaceable(srcInfo fs.FileInfo, dst string, dstInfo fs.FileInfo) error {
	switch {
	case !srcInfo.IsDir() && !dstInfo.IsDir():
		return nil
	case srcInfo.IsDir() && dstInfo.IsDir():
		empty, err := afero.IsEmpty(o.fs, dst)
		if err != nil {
			return fserr.Wrap(nil, "fsops", "inspect destination", dst, err)
		}
		if !empty {
			return fserr.Wrap(fserr.ErrDestinationConflict, "fsops", "destination directory is not empty", dst, nil)
		}
		return nil
	case dstInfo.IsDir():
		return fserr.Wrap(fserr.ErrDestinationConflict, "fsops", "cannot replace a directory with a file", dst, nil)
	default:
		return fserr.Wrap(fserr.ErrDestinationConflict, "fsops", "cannot replace a file with a directory", dst, nil)
	}
}

func (o *Ops) move(src, dst string, isDir bool) error {
	if !isDir {
		return fileutil.MoveFile(o.fs, src, dst)
	}
	err := o.fs.Rename(src, dst)
	if err == nil || !fserr.IsCrossDevice(err) {
		return err
	}
	if err := o.copyTree(src, dst); err != nil {
		_ = o.fs.RemoveAll(dst)
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := o.fs.RemoveAll(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// copyTreeFs mirrors a directory tree on a non-host filesystem.
func copyTreeFs(fsys afero.Fs, src, dst string) error {
	return afero.Walk(fsys, src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fsys.MkdirAll(target, info.Mode().Perm())
		}
		return fileutil.CopyFileVerified(fsys, path, target)
	})
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
