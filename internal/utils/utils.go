package utils

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SanitizeFilename strips directories and traversal segments from a
// user-supplied name, leaving a bare file name safe to join with the
// download directory. Returns "" when nothing safe remains.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "/" || name == "." || name == ".." {
		return ""
	}
	return name
}

// ListAudioFiles returns the names of files in dir with the given
// extension, sorted. A missing directory yields no files.
func ListAudioFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	suffix := "." + strings.TrimPrefix(ext, ".")

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), suffix) {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// RemoveAudioFiles deletes every file in dir with the given extension.
func RemoveAudioFiles(dir, ext string) error {
	files, err := ListAudioFiles(dir, ext)
	if err != nil {
		return err
	}

	for _, name := range files {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return err
		}
	}

	return nil
}
