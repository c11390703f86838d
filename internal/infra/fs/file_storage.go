package fs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates dir and its parents. Existing content is left alone.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFileAtomic streams write into "<path>.tmp" and renames it over path,
// so readers never observe a half-written file. An empty result is rejected
// and the previous file, if any, stays in place.
func WriteFileAtomic(path string, write func(w io.Writer) error) (int64, error) {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return 0, err
	}

	tempFilePath := path + ".tmp"
	f, err := os.OpenFile(tempFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		os.Remove(tempFilePath)
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to flush %s: %w", tempFilePath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to close %s: %w", tempFilePath, err)
	}

	info, err := os.Stat(tempFilePath)
	if err != nil {
		os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to stat %s: %w", tempFilePath, err)
	}
	if info.Size() == 0 {
		os.Remove(tempFilePath)
		return 0, fmt.Errorf("refusing to write empty file %s", path)
	}

	if err := os.Rename(tempFilePath, path); err != nil {
		os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to rename temporary file to %s: %w", path, err)
	}
	return info.Size(), nil
}
