package site

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gerunddev/mdsite/internal/logger"
)

// CopyResult summarizes a static tree copy
type CopyResult struct {
	Files int
	Bytes int64
}

// CopyStatic mirrors the src tree into dest, overwriting existing files.
// A missing src is not an error.
func CopyStatic(src, dest string, log *logger.Logger) (*CopyResult, error) {
	result := &CopyResult{}

	if _, err := os.Stat(src); os.IsNotExist(err) {
		log.Skipped(src, "static directory does not exist")
		return result, nil
	}

	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		n, err := copyFile(path, target, info)
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", path, err)
		}
		log.StaticCopied(path, target)
		result.Files++
		result.Bytes += n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// copyFile copies contents, mode and modification time
func copyFile(src, dest string, info os.FileInfo) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}

	return n, os.Chtimes(dest, info.ModTime(), info.ModTime())
}
