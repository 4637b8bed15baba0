// Package daemon runs the HTTP service and enforces single-instance
// execution.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"tublisher/internal/config"
	"tublisher/internal/deps"
	"tublisher/internal/logging"
	"tublisher/internal/pipeline"
	"tublisher/internal/staging"
)

// BookCreator converts a raw URL into a staged book.
type BookCreator interface {
	CreateBook(ctx context.Context, rawURL string) (pipeline.Book, error)
}

// staleArtifactAge is how long a staged artifact may sit before the
// startup sweep reclaims it.
const staleArtifactAge = 6 * time.Hour

// Daemon owns the API server and the instance lock.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	creator BookCreator
	api     *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon around the given book creator.
func New(cfg *config.Config, creator BookCreator, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || creator == nil || logger == nil {
		return nil, errors.New("daemon requires config, creator, and logger")
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "tublisher.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "daemon"),
		creator:  creator,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the instance lock, sweeps stale staging artifacts, and
// begins serving.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another tublisher instance is already running")
	}

	if err := staging.EnsureLayout(d.cfg.Paths.StagingDir); err != nil {
		_ = d.lock.Unlock()
		return err
	}
	swept := staging.CleanStale(d.cfg.Paths.StagingDir, staleArtifactAge, d.logger)
	if len(swept.Removed) > 0 {
		d.logger.Info("reclaimed stale staging artifacts", logging.Int("count", len(swept.Removed)))
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	if err := d.api.start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("tublisher daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts the API server down and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("tublisher daemon stopped")
}

// Status reports runtime information for the status endpoint.
func (d *Daemon) Status() StatusReport {
	return StatusReport{
		Running:      d.running.Load(),
		LockFilePath: d.lockPath,
		Dependencies: deps.CheckBinaries(deps.Requirements(d.cfg.Audio.FFmpegLocation)),
	}
}

// StatusReport describes daemon runtime state.
type StatusReport struct {
	Running      bool
	LockFilePath string
	Dependencies []deps.Status
}
