// Package listing enumerates the immediate children of a directory in the
// fixed order every mia command presents them in.
//
// Directories (and other non-regular entries) sort before plain files; ties
// break on the case-folded name and finally on the raw name, which makes
// Compare a total order over the entries of one directory. Listings are
// read from an afero.Fs so the traversal packages can be exercised against an
// in-memory filesystem.
package listing
