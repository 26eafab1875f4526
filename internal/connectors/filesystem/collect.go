// Package filesystem discovers résumé files on local disk and watches
// directories for new ones.
package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// IsCandidate reports whether path names a visible file with a supported extension.
func IsCandidate(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	_, ok := domain.FormatFromFilename(base)
	return ok
}

// Collect expands paths into the résumé files they contain. Files are kept
// as given; directories are walked recursively, skipping hidden entries and
// unsupported extensions. The result is sorted and free of duplicates.
func Collect(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsCandidate(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadUpload reads a file into an upload named after its base name.
func ReadUpload(path string) (domain.Upload, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("read %s: %w", path, err)
	}
	return domain.Upload{Filename: filepath.Base(path), Content: content}, nil
}
