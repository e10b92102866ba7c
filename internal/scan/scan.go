// Package scan walks the article corpus and collects source paths in a
// deterministic order.
package scan

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Scan recursively visits rootDir depth-first, listing each directory's
// entries in lexicographic name order, and returns every file path ending in
// extension (exact, case-sensitive suffix match).
//
// The result is fully materialized before returning. Any directory read or
// entry stat error aborts the whole scan; there is no per-entry suppression.
func Scan(rootDir, extension string) ([]string, error) {
	paths := make([]string, 0)

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, extension) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.ScanFailed(rootDir, err)
	}

	slog.Debug("Corpus scan complete", logfields.Path(rootDir), slog.Int("files", len(paths)))
	return paths, nil
}
