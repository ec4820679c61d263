package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchivePages moves every exported page PNG in dir into
// dir/archive/pages-<timestamp>. It returns the archive folder and the
// number of pages moved. Nothing is created when there is nothing to move.
func ArchivePages(dir string, now time.Time) (string, int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return "", 0, fmt.Errorf("output directory does not exist: %s", dir)
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to read output directory: %w", err)
	}

	var pages []string
	for _, entry := range entries {
		if !entry.IsDir() && IsPageFile(entry.Name()) {
			pages = append(pages, entry.Name())
		}
	}
	if len(pages) == 0 {
		return "", 0, nil
	}

	archivePath := uniqueDir(filepath.Join(dir, "archive", "pages-"+now.Format("20060102-150405")))
	if err := os.MkdirAll(archivePath, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create archive directory: %w", err)
	}

	for i, name := range pages {
		if err := os.Rename(filepath.Join(dir, name), filepath.Join(archivePath, name)); err != nil {
			return archivePath, i, fmt.Errorf("failed to archive %s: %w", name, err)
		}
	}
	return archivePath, len(pages), nil
}

// IsPageFile reports whether name looks like an exported page.
func IsPageFile(name string) bool {
	if !strings.EqualFold(filepath.Ext(name), ".png") {
		return false
	}
	return strings.HasPrefix(name, "wordcards_") || strings.Contains(name, "_wordcards_")
}

// uniqueDir appends -2, -3, ... while path exists
func uniqueDir(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", path, n)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
