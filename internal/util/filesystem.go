package util

import (
	"os"
	"sort"

	"github.com/bmatcuk/doublestar"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ScanFiles returns the regular files matching the glob pattern, sorted by path.
func ScanFiles(pattern string) ([]string, error) {
	matches, err := doublestar.Glob(pattern)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
