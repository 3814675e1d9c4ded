package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"mia/internal/fserr"
)

// CopyFileVerified copies src to dst with the source permissions, then reads
// dst back and compares its size and SHA-256 against what was read from src.
// dst is removed when the copy fails or does not verify.
func CopyFileVerified(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	want, written, err := copyHashed(fsys, src, dst, info.Mode().Perm())
	if err != nil {
		return err
	}
	if err := verify(fsys, dst, want, written, info.Size()); err != nil {
		_ = fsys.Remove(dst)
		return err
	}
	return nil
}

func verify(fsys afero.Fs, dst string, want []byte, written, size int64) error {
	if written != size {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", size, written)
	}
	got, err := hashFile(fsys, dst)
	if err != nil {
		return fmt.Errorf("verify copy: %w", err)
	}
	if !bytes.Equal(want, got) {
		return fmt.Errorf("copy hash mismatch: %s", dst)
	}
	return nil
}

// copyHashed streams src into dst and returns the digest of the bytes read
// from src. dst is removed if it was opened but the copy failed.
func copyHashed(fsys afero.Fs, src, dst string, perm os.FileMode) ([]byte, int64, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return nil, 0, err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return nil, 0, err
	}
	hasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, hasher))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = fsys.Remove(dst)
		return nil, 0, err
	}
	return hasher.Sum(nil), written, nil
}

func hashFile(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return nil, err
	}
	return hasher.Sum(nil), nil
}

// MoveFile renames a regular file, falling back to a verified copy followed by
// removal of src when the rename crosses filesystems. dst is replaced if it
// exists.
func MoveFile(fsys afero.Fs, src, dst string) error {
	err := fsys.Rename(src, dst)
	if err == nil || !fserr.IsCrossDevice(err) {
		return err
	}
	if err := CopyFileVerified(fsys, src, dst); err != nil {
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := fsys.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
