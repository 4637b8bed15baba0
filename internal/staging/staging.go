// Package staging manages the transient workspace for in-flight
// conversions. Every artifact written here is deleted once the
// response leaves the server; the cleanup sweep reclaims anything a
// crash left behind.
package staging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"tublisher/internal/logging"
)

const (
	audioSubdir = "audio"
	bookSubdir  = "books"
)

// AudioDir returns the directory holding downloaded audio tracks.
func AudioDir(stagingDir string) string {
	return filepath.Join(stagingDir, audioSubdir)
}

// AudioPath returns the staging path for a video's extracted audio.
func AudioPath(stagingDir, videoID string) string {
	return filepath.Join(AudioDir(stagingDir), videoID+".mp3")
}

// BookDir returns the directory holding assembled documents awaiting
// transmission.
func BookDir(stagingDir string) string {
	return filepath.Join(stagingDir, bookSubdir)
}

// BookPath returns a unique staging path for an assembled document.
// Concurrent requests for the same video must not overwrite each
// other, so the name carries a fresh suffix per call.
func BookPath(stagingDir, videoID string) string {
	return filepath.Join(BookDir(stagingDir), fmt.Sprintf("%s-%s.epub", videoID, uuid.NewString()))
}

// EnsureLayout creates the staging subdirectories.
func EnsureLayout(stagingDir string) error {
	for _, dir := range []string{AudioDir(stagingDir), BookDir(stagingDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create staging directory %s: %w", dir, err)
		}
	}
	return nil
}

// Remove deletes a staged artifact. A path that is already gone is not
// an error, and any other failure is logged rather than returned so
// cleanup never masks the outcome of the work that produced the
// artifact.
func Remove(path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return
	}
	if logger != nil {
		logger.Warn("failed to remove staged artifact",
			logging.String("path", path),
			logging.Error(err),
		)
	}
}
