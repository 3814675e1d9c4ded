// Package tree renders a directory hierarchy as indented box-drawing lines.
//
// Rendering is lazy: Lines returns an iterator that lists each directory only
// when the walk reaches it, so callers can stream output and stop early.
// Ordering comes from the listing package, which makes output for an
// unchanged tree byte-identical across runs.
package tree

import (
	"iter"
	"log/slog"
	"path/filepath"

	"mia/internal/fserr"
	"mia/internal/listing"
	"mia/internal/logging"
)

// Unlimited disables the depth bound.
const Unlimited = -1

// Line is one rendered entry. Depth is 0 for the root line and 1 for the
// root's direct children.
type Line struct {
	Prefix    string
	Connector string
	Name      string
	Path      string
	Depth     int
	Kind      listing.Kind
}

// Text returns the full display line.
func (l Line) Text() string {
	return l.Prefix + l.Connector + l.Name
}

// Matcher reports whether a path relative to the tree root is excluded.
type Matcher interface {
	MatchesPath(path string) bool
}

// Options configures a Renderer.
type Options struct {
	// MaxDepth bounds the depth of emitted entries; Unlimited disables it.
	MaxDepth int
	Glyphs   Glyphs
	Exclude  Matcher
}

// Renderer walks directories through a listing.Lister.
type Renderer struct {
	lister *listing.Lister
	opts   Options
	logger *slog.Logger
}

// New returns a Renderer. Zero-valued glyphs default to BoxGlyphs.
func New(lister *listing.Lister, opts Options, logger *slog.Logger) *Renderer {
	if opts.Glyphs == (Glyphs{}) {
		opts.Glyphs = BoxGlyphs
	}
	return &Renderer{
		lister: lister,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "tree"),
	}
}

// Lines yields the root line followed by one line per entry in pre-order.
// A subdirectory that cannot be listed yields a non-nil error together with
// a Line describing where it happened; the walk then continues with the
// remaining siblings. Each call starts a fresh walk.
func (r *Renderer) Lines(root string) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		head := Line{Name: rootName(root), Path: root, Kind: listing.KindDir}
		if !yield(head, nil) {
			return
		}
		r.walk(root, root, "", 1, yield)
	}
}

func (r *Renderer) walk(root, dir, prefix string, depth int, yield func(Line, error) bool) bool {
	if r.opts.MaxDepth != Unlimited && depth > r.opts.MaxDepth {
		return true
	}
	entries, err := r.lister.List(dir)
	if err != nil {
		logging.WarnWithContext(r.logger, "directory skipped while rendering tree", fserr.EventType(err),
			logging.String("path", dir),
			logging.Int("depth", depth),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.String(logging.FieldImpact, "subtree omitted from output"),
		)
		return yield(Line{Prefix: prefix, Path: dir, Depth: depth, Kind: listing.KindDir}, err)
	}
	entries = excluded(r.opts.Exclude, root, entries)

	for i, entry := range entries {
		last := i == len(entries)-1
		line := Line{
			Prefix:    prefix,
			Connector: r.opts.Glyphs.connector(last),
			Name:      entry.DisplayName(),
			Path:      entry.Path(),
			Depth:     depth,
			Kind:      entry.Kind,
		}
		if !yield(line, nil) {
			return false
		}
		if entry.Descendable() {
			if !r.walk(root, entry.Path(), prefix+r.opts.Glyphs.continuation(last), depth+1, yield) {
				return false
			}
		}
	}
	return true
}

// excluded drops entries matched by m. Matching happens before last-sibling
// selection so connectors stay correct.
func excluded(m Matcher, root string, entries []listing.Entry) []listing.Entry {
	if m == nil {
		return entries
	}
	kept := entries[:0:0]
	for _, e := range entries {
		rel, err := filepath.Rel(root, e.Path())
		if err == nil && m.MatchesPath(filepath.ToSlash(rel)) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func rootName(root string) string {
	base := filepath.Base(root)
	if base == string(filepath.Separator) || base == "." {
		return base
	}
	return base + "/"
}
