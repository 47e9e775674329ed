// Package walker discovers ingestible documents under a root directory,
// applying include/exclude glob patterns and a file size cap.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doctrove/doctrove/internal/extract"
)

// FileInfo describes a single document found during a walk.
type FileInfo struct {
	// Path is the absolute path to the file.
	Path string
	// RelPath is the path relative to the walk root, using forward slashes.
	RelPath string
	// Size is the file size in bytes.
	Size int64
}

// Config controls a directory walk.
type Config struct {
	// RootDir is the directory to walk.
	RootDir string
	// Include holds glob patterns; when non-empty, a file must match at
	// least one to be kept. Patterns use doublestar syntax ("**/*.pdf").
	Include []string
	// Exclude holds glob patterns; a file matching any is skipped.
	Exclude []string
	// MaxFileSize is the per-file size cap in bytes. Zero means the
	// default of 50 MiB.
	MaxFileSize int64
}

const defaultMaxFileSize = 50 << 20

// Walk traverses cfg.RootDir and returns every file with a supported
// document extension that passes the include/exclude filters.
func Walk(cfg Config) ([]FileInfo, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root dir: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = defaultMaxFileSize
	}

	var files []FileInfo
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !extract.Allowed(d.Name()) {
			return nil
		}
		if !matches(rel, cfg.Include, cfg.Exclude) {
			return nil
		}
		fi, statErr := d.Info()
		if statErr != nil {
			return nil
		}
		if fi.Size() > maxSize {
			return nil
		}
		files = append(files, FileInfo{Path: path, RelPath: rel, Size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
