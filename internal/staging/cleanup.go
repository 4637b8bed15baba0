package staging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tublisher/internal/logging"
)

// CleanStaleResult contains the outcome of a stale artifact cleanup pass.
type CleanStaleResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs an artifact path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStale removes staged artifacts older than maxAge. Requests hold
// their artifacts only for the duration of one conversion, so anything
// older is debris from an interrupted run. It returns the list of
// removed paths and any errors encountered.
func CleanStale(stagingDir string, maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}

	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return result
	}

	cutoff := time.Now().Add(-maxAge)

	for _, dir := range []string{AudioDir(stagingDir), BookDir(stagingDir)} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				result.Errors = append(result.Errors, CleanupError{Path: dir, Error: err})
			}
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			info, err := entry.Info()
			if err != nil {
				result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
				continue
			}
			if !info.ModTime().Before(cutoff) {
				continue
			}

			if err := os.Remove(path); err != nil {
				result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
				if logger != nil {
					logger.Warn("failed to remove stale staging artifact",
						logging.String("path", path),
						logging.Error(err),
					)
				}
				continue
			}
			result.Removed = append(result.Removed, path)
			if logger != nil {
				logger.Info("removed stale staging artifact",
					logging.String("path", path),
					logging.Duration("age", time.Since(info.ModTime())),
				)
			}
		}
	}

	return result
}
