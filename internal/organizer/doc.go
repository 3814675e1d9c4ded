// Package organizer sorts the loose files of one directory into category
// folders.
//
// Only the immediate plain files of the directory are considered; existing
// subdirectories, including category folders created by an earlier run, are
// never entered or moved, which makes repeated runs idempotent. Each file is
// classified by extension and moved under its unchanged name into a folder
// named after its category, created on demand. Per-file failures are recorded
// in the Result and the run continues with the remaining files.
package organizer
