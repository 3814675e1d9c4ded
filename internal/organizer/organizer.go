package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"mia/internal/classify"
	"mia/internal/fileutil"
	"mia/internal/fserr"
	"mia/internal/listing"
	"mia/internal/logging"
	"mia/internal/textutil"
)

// ConflictPolicy decides what happens when a file with the same name already
// exists in the destination folder.
type ConflictPolicy string

const (
	// ConflictSkip leaves the source in place and records a failure.
	ConflictSkip ConflictPolicy = "skip"
	// ConflictOverwrite replaces the existing destination file.
	ConflictOverwrite ConflictPolicy = "overwrite"
	// ConflictRename moves the file under the first free "name (N).ext".
	ConflictRename ConflictPolicy = "rename"
)

// ParseConflictPolicy validates a policy name. Empty selects ConflictSkip.
func ParseConflictPolicy(value string) (ConflictPolicy, error) {
	switch policy := ConflictPolicy(strings.ToLower(strings.TrimSpace(value))); policy {
	case "":
		return ConflictSkip, nil
	case ConflictSkip, ConflictOverwrite, ConflictRename:
		return policy, nil
	default:
		return "", fmt.Errorf("%w: unknown conflict policy %q (use skip, overwrite, or rename)", fserr.ErrInvalidInput, value)
	}
}

// Options configures a single Organize call.
type Options struct {
	// OtherBucket receives uncategorized files when non-empty. Otherwise they
	// stay where they are and are counted as skipped.
	OtherBucket string
	// Verbose records every move in Result.Moves in arrival order.
	Verbose    bool
	OnConflict ConflictPolicy
}

// Move is one completed relocation.
type Move struct {
	Name     string
	Category string
	Target   string
}

// Failure is a file that could not be organized.
type Failure struct {
	Name string
	Err  error
}

// Result summarizes an Organize run.
type Result struct {
	Moved    int
	Moves    []Move
	Skipped  int
	Failures []Failure
}

// Organizer moves files into category folders.
type Organizer struct {
	fs         afero.Fs
	lister     *listing.Lister
	classifier *classify.Classifier
	logger     *slog.Logger
}

// New returns an Organizer working on fsys. A nil fsys uses the host
// filesystem and a nil classifier uses the default category table.
func New(fsys afero.Fs, classifier *classify.Classifier, logger *slog.Logger) *Organizer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if classifier == nil {
		classifier = classify.New(nil)
	}
	return &Organizer{
		fs:         fsys,
		lister:     listing.New(fsys, listing.Options{IncludeHidden: true}),
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "organizer"),
	}
}

// Organize sorts the immediate files of dir. The returned error is non-nil
// only when dir itself cannot be read, the options are invalid, or ctx is
// cancelled; per-file problems are reported through Result.Failures.
func (o *Organizer) Organize(ctx context.Context, dir string, opts Options) (Result, error) {
	var result Result
	logger := logging.WithContext(ctx, o.logger)

	policy, err := ParseConflictPolicy(string(opts.OnConflict))
	if err != nil {
		return result, err
	}
	bucket := strings.TrimSpace(opts.OtherBucket)
	if bucket != "" && !textutil.IsSafeFolderName(bucket) {
		return result, fserr.Wrap(fserr.ErrInvalidInput, "organizer", "other bucket", bucket, nil)
	}

	entries, err := o.lister.List(dir)
	if err != nil {
		return result, err
	}
	logger.Debug("organizing directory", logging.String("path", dir), logging.Int("entries", len(entries)))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if entry.Kind != listing.KindFile {
			continue
		}

		category, ok := o.classifier.Classify(entry.Name)
		if !ok {
			if bucket == "" {
				result.Skipped++
				logger.Debug("uncategorized file left in place", logging.String("name", entry.Name))
				continue
			}
			category = bucket
		}

		target, err := o.place(dir, entry.Name, category, policy)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Name: entry.Name, Err: err})
			logging.WarnWithContext(logger, "file not organized", fserr.EventType(err),
				logging.String("name", entry.Name),
				logging.String("category", category),
				logging.Error(err),
				logging.String(logging.FieldImpact, "file left in place"),
			)
			continue
		}

		result.Moved++
		if opts.Verbose {
			result.Moves = append(result.Moves, Move{Name: entry.Name, Category: category, Target: target})
		}
		logger.Debug("file organized",
			logging.String("name", entry.Name),
			logging.String("category", category),
			logging.String("target", target),
		)
	}

	logger.Info("organize completed",
		logging.String("path", dir),
		logging.Int("moved", result.Moved),
		logging.Int("skipped", result.Skipped),
		logging.Int("failed", len(result.Failures)),
	)
	return result, nil
}

// place moves dir/name into dir/category and returns the final path.
func (o *Organizer) place(dir, name, category string, policy ConflictPolicy) (string, error) {
	src := filepath.Join(dir, name)
	folder := filepath.Join(dir, category)

	info, err := o.fs.Stat(folder)
	switch {
	case err == nil && !info.IsDir():
		return "", fserr.Wrap(fserr.ErrDestinationConflict, "organizer", "category folder is a file", folder, nil)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", fserr.Wrap(nil, "organizer", "stat category folder", folder, err)
	case err != nil:
		if err := o.fs.MkdirAll(folder, 0o755); err != nil {
			return "", fserr.Wrap(nil, "organizer", "create category folder", folder, err)
		}
	}

	target := filepath.Join(folder, name)
	existing, err := o.fs.Stat(target)
	if err == nil {
		switch policy {
		case ConflictOverwrite:
			if existing.IsDir() {
				return "", fserr.Wrap(fserr.ErrDestinationConflict, "organizer", "destination is a directory", target, nil)
			}
			if err := o.fs.Remove(target); err != nil {
				return "", fserr.Wrap(nil, "organizer", "replace destination", target, err)
			}
		case ConflictRename:
			target, err = o.freeName(folder, name)
			if err != nil {
				return "", err
			}
		default:
			return "", fserr.Wrap(fserr.ErrDestinationConflict, "organizer", "destination exists", target, nil)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fserr.Wrap(nil, "organizer", "stat destination", target, err)
	}

	if err := fileutil.MoveFile(o.fs, src, target); err != nil {
		return "", fserr.Wrap(nil, "organizer", "move file", src, err)
	}
	return target, nil
}

const maxRenameAttempts = 10000

// freeName returns the first "stem (N)ext" path in folder that does not exist.
func (o *Organizer) freeName(folder, name string) (string, error) {
	stem, ext := name, ""
	if classify.Extension(name) != "" {
		i := strings.LastIndexByte(name, '.')
		stem, ext = name[:i], name[i:]
	}
	for n := 1; n <= maxRenameAttempts; n++ {
		candidate := filepath.Join(folder, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		ok, err := afero.Exists(o.fs, candidate)
		if err != nil {
			return "", fserr.Wrap(nil, "organizer", "probe destination", candidate, err)
		}
		if !ok {
			return candidate, nil
		}
	}
	return "", fserr.Wrap(fserr.ErrDestinationConflict, "organizer", "no free destination name", filepath.Join(folder, name), nil)
}
