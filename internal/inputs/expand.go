package inputs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Supported input extensions (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".mp4": true,
	".mkv": true,
	".mov": true,
}

// Extensions lists the accepted input extensions without the leading dot.
func Extensions() []string {
	return []string{"mp4", "mkv", "mov"}
}

// Allowed reports whether path carries a supported video extension.
// Matching is case-insensitive.
func Allowed(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Expand walks paths and returns every supported video file in argument
// order, descending into directories in the order os.ReadDir reports their
// entries. Symlinks are followed. Files with other extensions are skipped.
func Expand(paths []string) ([]string, error) {
	var files []string
	err := walk(paths, func(path string) {
		if Allowed(path) {
			files = append(files, path)
		}
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ExpandAll is Expand without the extension filter.
func ExpandAll(paths []string) ([]string, error) {
	var files []string
	if err := walk(paths, func(path string) { files = append(files, path) }); err != nil {
		return nil, err
	}
	return files, nil
}

func walk(paths []string, visit func(string)) error {
	stack := make([]string, 0, len(paths))
	for i := len(paths) - 1; i >= 0; i-- {
		stack = append(stack, paths[i])
	}

	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat input %q: %w", path, err)
		}
		if !info.IsDir() {
			visit(path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("read input directory %q: %w", path, err)
		}
		for i := len(entries) - 1; i >= 0; i-- {
			stack = append(stack, filepath.Join(path, entries[i].Name()))
		}
	}
	return nil
}
