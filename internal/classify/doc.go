// Package classify maps file names to organize categories.
//
// A Table is an ordered, immutable list of categories, each owning a set of
// lowercase dotted extensions. Lookups walk the table in declaration order and
// the first category containing the extension wins. Tables are passed to the
// Classifier explicitly; there is no process-wide table to mutate.
package classify
