// Package textutil provides text helpers shared by the listing, search and
// organize packages.
//
// Name comparisons throughout mia are case-insensitive. Fold applies Unicode
// full case folding (golang.org/x/text/cases) so that ordering and substring
// matching agree on what "the same name" means, including for non-ASCII names
// where strings.ToLower is not enough (for example "STRASSE" and "straße").
package textutil
