// Package fileutil holds small file helpers shared by the commands that move
// files: streaming copies, checksum-verified copies, and a rename that
// survives filesystem boundaries.
package fileutil
