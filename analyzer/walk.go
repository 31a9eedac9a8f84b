package analyzer

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// WalkDir returns the regular files under dir whose extension is in
// extensions. Hidden files and directories are skipped.
func WalkDir(dir string, extensions []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == dir || path == "." || path == ".." {
			return nil
		}

		if d.Name()[0] == '.' {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(strings.ToLower(path))
		if d.Type().IsRegular() && slices.Contains(extensions, ext) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return files, nil
}
