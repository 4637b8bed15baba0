package staging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tublisher/internal/logging"
)

func TestCleanStaleInvalidPaths(t *testing.T) {
	for _, dir := range []string{"", "   ", "/nonexistent/path/12345"} {
		result := CleanStale(dir, time.Hour, logging.NewNop())
		if len(result.Removed) != 0 || len(result.Errors) != 0 {
			t.Errorf("expected empty result for path %q", dir)
		}
	}
}

func TestCleanStaleRemovesOldArtifacts(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureLayout(tmpDir); err != nil {
		t.Fatalf("ensure layout: %v", err)
	}

	oldAudio := AudioPath(tmpDir, "dQw4w9WgXcQ")
	if err := os.WriteFile(oldAudio, []byte("mp3"), 0o644); err != nil {
		t.Fatalf("create old audio: %v", err)
	}
	oldTime := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(oldAudio, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	recentBook := filepath.Join(BookDir(tmpDir), "book-recent.epub")
	if err := os.WriteFile(recentBook, []byte("epub"), 0o644); err != nil {
		t.Fatalf("create recent book: %v", err)
	}

	result := CleanStale(tmpDir, time.Hour, logging.NewNop())

	if len(result.Removed) != 1 {
		t.Fatalf("expected 1 removed, got %d: %v", len(result.Removed), result.Removed)
	}
	if result.Removed[0] != oldAudio {
		t.Errorf("expected %s to be removed, got %s", oldAudio, result.Removed[0])
	}
	if _, err := os.Stat(oldAudio); !os.IsNotExist(err) {
		t.Error("old audio should have been removed")
	}
	if _, err := os.Stat(recentBook); err != nil {
		t.Error("recent book should still exist")
	}
}

func TestCleanStaleIgnoresDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureLayout(tmpDir); err != nil {
		t.Fatalf("ensure layout: %v", err)
	}

	nested := filepath.Join(AudioDir(tmpDir), "nested")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatalf("create nested dir: %v", err)
	}
	oldTime := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(nested, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	result := CleanStale(tmpDir, time.Hour, logging.NewNop())

	if len(result.Removed) != 0 {
		t.Errorf("expected no removals for directories, got %v", result.Removed)
	}
	if _, err := os.Stat(nested); err != nil {
		t.Error("nested directory should not have been removed")
	}
}

func TestRemoveMissingPathIsSilent(t *testing.T) {
	Remove(filepath.Join(t.TempDir(), "gone.mp3"), logging.NewNop())
	Remove("", logging.NewNop())
}

func TestRemoveDeletesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.mp3")
	if err := os.WriteFile(path, []byte("mp3"), 0o644); err != nil {
		t.Fatalf("create file: %v", err)
	}

	Remove(path, logging.NewNop())

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should have been removed")
	}
}

func TestAudioPathLayout(t *testing.T) {
	got := AudioPath("/var/lib/tublisher/staging", "dQw4w9WgXcQ")
	want := filepath.Join("/var/lib/tublisher/staging", "audio", "dQw4w9WgXcQ.mp3")
	if got != want {
		t.Fatalf("AudioPath = %q, want %q", got, want)
	}
}
