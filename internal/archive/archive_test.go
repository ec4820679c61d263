package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/flashpage/internal/testutil"
)

var archiveTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestArchivePages(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestFile(t, filepath.Join(dir, "Mina_wordcards_2026-03-13.png"), []byte("page"))
	testutil.CreateTestFile(t, filepath.Join(dir, "wordcards_2026-03-12.png"), []byte("page"))
	testutil.CreateTestFile(t, filepath.Join(dir, "Mina_wordcards_2026-03-13_2.png"), []byte("page"))
	testutil.CreateTestFile(t, filepath.Join(dir, "holiday.png"), []byte("not a page"))
	testutil.CreateTestFile(t, filepath.Join(dir, "notes.txt"), []byte("keep"))

	archivePath, n, err := ArchivePages(dir, archiveTime)
	if err != nil {
		t.Fatalf("ArchivePages failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Moved %d pages, want 3", n)
	}

	wantPath := filepath.Join(dir, "archive", "pages-20260314-093000")
	if archivePath != wantPath {
		t.Errorf("Archive path = %s, want %s", archivePath, wantPath)
	}

	testutil.AssertFileExists(t, filepath.Join(archivePath, "Mina_wordcards_2026-03-13.png"))
	testutil.AssertFileExists(t, filepath.Join(archivePath, "wordcards_2026-03-12.png"))
	testutil.AssertFileNotExists(t, filepath.Join(dir, "Mina_wordcards_2026-03-13.png"))

	// Unrelated files stay where they are
	testutil.AssertFileExists(t, filepath.Join(dir, "holiday.png"))
	testutil.AssertFileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestArchivePagesNothingToMove(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestFile(t, filepath.Join(dir, "notes.txt"), []byte("keep"))

	archivePath, n, err := ArchivePages(dir, archiveTime)
	if err != nil {
		t.Fatalf("ArchivePages failed: %v", err)
	}
	if n != 0 || archivePath != "" {
		t.Errorf("ArchivePages() = %q, %d, want nothing", archivePath, n)
	}
	if _, err := os.Stat(filepath.Join(dir, "archive")); !os.IsNotExist(err) {
		t.Error("Archive directory created although nothing was moved")
	}
}

func TestArchivePagesNonExistentDirectory(t *testing.T) {
	_, _, err := ArchivePages(filepath.Join(t.TempDir(), "missing"), archiveTime)
	if err == nil {
		t.Fatal("Expected error for non-existent directory")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestArchivePagesTwiceSameSecond(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 2; i++ {
		testutil.CreateTestFile(t, filepath.Join(dir, "wordcards_2026-03-14.png"), []byte("page"))
		path, _, err := ArchivePages(dir, archiveTime)
		if err != nil {
			t.Fatalf("ArchivePages failed on iteration %d: %v", i, err)
		}
		paths = append(paths, path)
	}

	if paths[0] == paths[1] {
		t.Errorf("Archive names are not unique: %s", paths[0])
	}
	if !strings.HasSuffix(paths[1], "-2") {
		t.Errorf("Second archive = %s, want -2 suffix", paths[1])
	}
}

func TestIsPageFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Mina_wordcards_2026-03-14.png", true},
		{"wordcards_2026-03-14.png", true},
		{"민아_wordcards_2026-03-14_3.PNG", true},
		{"wordcards_2026-03-14.jpg", false},
		{"cat.png", false},
		{"mywordcards.png", false},
	}
	for _, tt := range tests {
		if got := IsPageFile(tt.name); got != tt.want {
			t.Errorf("IsPageFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
