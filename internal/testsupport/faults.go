package testsupport

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FaultFs wraps an afero.Fs and fails selected operations with fixed errors.
// Paths are compared after filepath.Clean.
type FaultFs struct {
	afero.Fs

	// OpenErrors fails Open for the listed directory or file paths.
	OpenErrors map[string]error
	// RenameErrors fails Rename when the source path matches.
	RenameErrors map[string]error
}

// NewFaultFs returns a FaultFs around base with no faults configured.
func NewFaultFs(base afero.Fs) *FaultFs {
	return &FaultFs{
		Fs:           base,
		OpenErrors:   map[string]error{},
		RenameErrors: map[string]error{},
	}
}

// DenyOpen makes Open on name fail with err.
func (f *FaultFs) DenyOpen(name string, err error) *FaultFs {
	f.OpenErrors[filepath.Clean(name)] = err
	return f
}

// DenyRename makes Rename from name fail with err.
func (f *FaultFs) DenyRename(name string, err error) *FaultFs {
	f.RenameErrors[filepath.Clean(name)] = err
	return f
}

func (f *FaultFs) Open(name string) (afero.File, error) {
	if err, ok := f.OpenErrors[filepath.Clean(name)]; ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Open(name)
}

func (f *FaultFs) Rename(oldname, newname string) error {
	if err, ok := f.RenameErrors[filepath.Clean(oldname)]; ok {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: err}
	}
	return f.Fs.Rename(oldname, newname)
}
