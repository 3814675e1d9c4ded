// Package fserr defines the error taxonomy shared by the traversal, search and
// organize commands.
//
// Platform errors are folded onto a small set of sentinel markers so callers
// can branch with errors.Is regardless of which syscall failed. Wrap keeps the
// component and operation in the message while preserving both the marker and
// the underlying cause for errors.Is/errors.As.
package fserr
