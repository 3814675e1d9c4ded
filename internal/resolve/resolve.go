// Package resolve turns user-supplied path strings into absolute, canonical
// filesystem paths.
//
// Every command resolves its root exactly once, before any traversal begins.
// The existence probe happens at resolution time only; later filesystem errors
// remain authoritative.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mia/internal/fserr"
)

// Expand expands a leading "~" or "~/" to the current user's home directory
// and makes the result absolute against the working directory. It does not
// touch the filesystem beyond looking up the home directory.
func Expand(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = "."
	}
	if strings.HasPrefix(value, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if value == "~" {
			value = home
		} else if len(value) > 1 && (value[1] == '/' || value[1] == '\\') {
			value = filepath.Join(home, value[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(value))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// Path resolves raw to an absolute path with every symlink evaluated. It
// fails with fserr.ErrNotFound when the path does not exist.
func Path(raw string) (string, error) {
	expanded, err := Expand(raw)
	if err != nil {
		return "", fserr.Wrap(fserr.ErrInvalidInput, "resolve", "expand", raw, err)
	}
	canonical, err := filepath.EvalSymlinks(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fserr.Wrap(fserr.ErrNotFound, "resolve", "path not found", expanded, nil)
		}
		return "", fserr.Wrap(nil, "resolve", "canonicalize", expanded, err)
	}
	return canonical, nil
}

// Dir resolves raw like Path and additionally requires a directory.
func Dir(raw string) (string, error) {
	resolved, err := Path(raw)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fserr.Wrap(nil, "resolve", "stat", resolved, err)
	}
	if !info.IsDir() {
		return "", fserr.Wrap(fserr.ErrNotDirectory, "resolve", "expected directory", resolved, nil)
	}
	return resolved, nil
}

// Target resolves a path that may not exist yet, such as a rename
// destination. Symlinks are evaluated for the longest existing ancestor and
// the missing tail is appended unchanged.
func Target(raw string) (string, error) {
	expanded, err := Expand(raw)
	if err != nil {
		return "", fserr.Wrap(fserr.ErrInvalidInput, "resolve", "expand", raw, err)
	}
	existing := expanded
	var tail []string
	for {
		canonical, err := filepath.EvalSymlinks(existing)
		if err == nil {
			parts := append([]string{canonical}, tail...)
			return filepath.Join(parts...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fserr.Wrap(nil, "resolve", "canonicalize", existing, err)
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return expanded, nil
		}
		tail = append([]string{filepath.Base(existing)}, tail...)
		existing = parent
	}
}
