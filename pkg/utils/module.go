package utils

import (
	"os"
	"path/filepath"
)

// FindUpward looks for any of names in dir and then each parent directory,
// returning the first path found or an empty string
func FindUpward(dir string, names ...string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	iterations := 0
	maxIterations := 20 // Prevent infinite loop

	for iterations < maxIterations {
		iterations++

		for _, name := range names {
			candidate := filepath.Join(absDir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			break
		}
		absDir = parent
	}
	return ""
}
