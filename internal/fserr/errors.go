package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/sys/unix"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrDestinationConflict = errors.New("destination conflict")
	ErrNotDirectory        = errors.New("not a directory")
	ErrInvalidInput        = errors.New("invalid input")
	ErrIO                  = errors.New("i/o failure")
)

// Wrap builds an error message that carries component, operation and path
// context while tagging it with marker. When marker is nil the marker is
// derived from err with Classify.
func Wrap(marker error, component, operation, path string, err error) error {
	if marker == nil {
		marker = Classify(err)
	}
	if marker == nil {
		marker = ErrIO
	}
	detail := buildDetail(component, operation, path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps err onto one of the package markers. Errors that already carry
// a marker keep it. Unknown failures map to ErrIO.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, marker := range markers {
		if errors.Is(err, marker) {
			return marker
		}
	}
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, unix.ENOENT):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return ErrPermissionDenied
	case errors.Is(err, fs.ErrExist), errors.Is(err, unix.EEXIST), errors.Is(err, unix.ENOTEMPTY):
		return ErrDestinationConflict
	case errors.Is(err, unix.ENOTDIR):
		return ErrNotDirectory
	case errors.Is(err, fs.ErrInvalid):
		return ErrInvalidInput
	}
	return ErrIO
}

var markers = []error{
	ErrNotFound,
	ErrPermissionDenied,
	ErrDestinationConflict,
	ErrNotDirectory,
	ErrInvalidInput,
	ErrIO,
}

// IsCrossDevice reports whether err is the rename failure raised when source
// and destination live on different filesystems.
func IsCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}

// EventType returns a stable snake_case label for err suitable for the
// event_type logging field.
func EventType(err error) string {
	switch Classify(err) {
	case ErrNotFound:
		return "not_found"
	case ErrPermissionDenied:
		return "permission_denied"
	case ErrDestinationConflict:
		return "destination_conflict"
	case ErrNotDirectory:
		return "not_directory"
	case ErrInvalidInput:
		return "invalid_input"
	default:
		return "io_failure"
	}
}

func buildDetail(component, operation, path string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if path = strings.TrimSpace(path); path != "" {
		parts = append(parts, path)
	}
	if len(parts) == 0 {
		return "filesystem failure"
	}
	return strings.Join(parts, ": ")
}
