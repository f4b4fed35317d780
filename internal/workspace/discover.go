package workspace

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks the workspace root and returns the slash-separated paths,
// relative to the root, of every script. Hidden and excluded directories
// are skipped.
func Discover(cfg Config) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != cfg.Root && skipDir(cfg, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !cfg.IsScript(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(cfg.Root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", cfg.Root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func skipDir(cfg Config, name string) bool {
	return strings.HasPrefix(name, ".") || cfg.Excluded(name)
}
