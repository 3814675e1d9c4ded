// Package search finds entries anywhere below a root whose names contain a
// case-insensitive substring.
package search

import (
	"iter"
	"log/slog"
	"path/filepath"

	"mia/internal/fserr"
	"mia/internal/listing"
	"mia/internal/logging"
	"mia/internal/textutil"
)

// Match is an entry whose name contains the pattern.
type Match struct {
	Path string
	Name string
	Kind listing.Kind
}

// Matcher reports whether a path relative to the search root is excluded.
type Matcher interface {
	MatchesPath(path string) bool
}

// Options configures a Searcher.
type Options struct {
	Exclude Matcher
}

// Searcher walks whole subtrees through a listing.Lister. The lister should
// include hidden entries for an exhaustive search.
type Searcher struct {
	lister *listing.Lister
	opts   Options
	logger *slog.Logger
}

// New returns a Searcher.
func New(lister *listing.Lister, opts Options, logger *slog.Logger) *Searcher {
	return &Searcher{
		lister: lister,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "search"),
	}
}

// Search yields every entry below root, at any depth, whose case-folded name
// contains the case-folded pattern. The root itself is never a candidate. An
// empty pattern matches every entry. Directories that cannot be listed yield
// a non-nil error with the directory's path in Match.Path; the walk then
// continues elsewhere. Symlinked directories are matched but not entered.
func (s *Searcher) Search(root, pattern string) iter.Seq2[Match, error] {
	folded := textutil.Fold(pattern)
	return func(yield func(Match, error) bool) {
		s.walk(root, root, folded, yield)
	}
}

func (s *Searcher) walk(root, dir, folded string, yield func(Match, error) bool) bool {
	entries, err := s.lister.List(dir)
	if err != nil {
		logging.WarnWithContext(s.logger, "directory skipped while searching", fserr.EventType(err),
			logging.String("path", dir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.String(logging.FieldImpact, "matches below this directory are not reported"),
		)
		return yield(Match{Path: dir, Name: filepath.Base(dir), Kind: listing.KindDir}, err)
	}

	for _, entry := range entries {
		if s.excluded(root, entry) {
			continue
		}
		if textutil.ContainsFold(entry.Name, folded) {
			if !yield(Match{Path: entry.Path(), Name: entry.Name, Kind: entry.Kind}, nil) {
				return false
			}
		}
		if entry.Descendable() {
			if !s.walk(root, entry.Path(), folded, yield) {
				return false
			}
		}
	}
	return true
}

func (s *Searcher) excluded(root string, entry listing.Entry) bool {
	if s.opts.Exclude == nil {
		return false
	}
	rel, err := filepath.Rel(root, entry.Path())
	return err == nil && s.opts.Exclude.MatchesPath(filepath.ToSlash(rel))
}

// Result is a fully collected search.
type Result struct {
	Matches []Match
	Errors  []error
}

// Count returns the number of matches.
func (r Result) Count() int {
	return len(r.Matches)
}

// Collect drains a search sequence.
func Collect(seq iter.Seq2[Match, error]) Result {
	var res Result
	for m, err := range seq {
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		res.Matches = append(res.Matches, m)
	}
	return res
}
