package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoMediaFiles is returned when discovery finds nothing to clean.
var ErrNoMediaFiles = errors.New("no media files found")

// Discovery lists the files selected for cleaning and the explicitly named
// files that were ignored because of their extension.
type Discovery struct {
	Files   []string
	Ignored []string
}

// Discover expands files and directories into absolute media file paths.
// Directories are walked recursively in lexical order; argument order is
// preserved otherwise and duplicates are dropped.
func Discover(paths []string, isMedia func(string) bool) (Discovery, error) {
	var result Discovery
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		result.Files = append(result.Files, path)
	}

	for _, raw := range paths {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return Discovery{}, fmt.Errorf("resolve %q: %w", raw, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return Discovery{}, fmt.Errorf("stat %q: %w", raw, err)
		}
		if !info.IsDir() {
			if isMedia(abs) {
				add(abs)
			} else {
				result.Ignored = append(result.Ignored, abs)
			}
			continue
		}
		var found []string
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && isMedia(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return Discovery{}, fmt.Errorf("walk %q: %w", raw, err)
		}
		sort.Strings(found)
		for _, path := range found {
			add(path)
		}
	}

	if len(result.Files) == 0 {
		return result, ErrNoMediaFiles
	}
	return result, nil
}
