// Package audio downloads and transcodes a video's audio track for the
// no-captions fallback path.
package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"tublisher/internal/deps"
	"tublisher/internal/logging"
	"tublisher/internal/services"
	"tublisher/internal/staging"
	"tublisher/internal/videoid"
)

// ErrDependencyMissing indicates ffmpeg could not be located, so the
// fallback cannot produce a usable track. The check runs before any
// network transfer starts.
var ErrDependencyMissing = errors.New("transcoder unavailable")

const defaultDownloadTimeout = 10 * time.Minute

// Downloader fetches the best audio stream and transcodes it to mp3.
type Downloader interface {
	DownloadAudio(ctx context.Context, url, outputTemplate, ffmpegPath string) error
}

type ytdlpDownloader struct{}

func (ytdlpDownloader) DownloadAudio(ctx context.Context, url, outputTemplate, ffmpegPath string) error {
	_, err := ytdlp.New().
		NoPlaylist().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality("64K").
		FFmpegLocation(ffmpegPath).
		Output(outputTemplate).
		Run(ctx, url)
	return err
}

// Acquirer stages a compact mp3 for a video.
type Acquirer struct {
	stagingDir     string
	ffmpegOverride string
	timeout        time.Duration
	downloader     Downloader
	logger         *slog.Logger
}

// Option mutates Acquirer construction.
type Option func(*Acquirer)

// WithDownloader substitutes the yt-dlp invocation, primarily for tests.
func WithDownloader(d Downloader) Option {
	return func(a *Acquirer) {
		if d != nil {
			a.downloader = d
		}
	}
}

// WithTimeout bounds a single download.
func WithTimeout(d time.Duration) Option {
	return func(a *Acquirer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewAcquirer constructs an Acquirer writing into the staging tree.
func NewAcquirer(stagingDir, ffmpegOverride string, logger *slog.Logger, opts ...Option) *Acquirer {
	a := &Acquirer{
		stagingDir:     stagingDir,
		ffmpegOverride: ffmpegOverride,
		timeout:        defaultDownloadTimeout,
		downloader:     ytdlpDownloader{},
		logger:         logging.WithComponent(logger, "audio"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire downloads the audio track for the video and returns the
// staged mp3 path. The transcoder is resolved before any bytes move;
// when it is absent the download is skipped entirely.
func (a *Acquirer) Acquire(ctx context.Context, id videoid.ID, url string) (string, error) {
	ffmpegPath, err := deps.ResolveFFmpeg(a.ffmpegOverride)
	if err != nil {
		return "", services.Wrap(ErrDependencyMissing, "audio", "resolve ffmpeg", "", err)
	}

	if err := os.MkdirAll(staging.AudioDir(a.stagingDir), 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "audio", "prepare staging", "", err)
	}

	dest := staging.AudioPath(a.stagingDir, id.String())
	template := templateFor(dest)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.logger.Info("downloading audio track",
		logging.String("video_id", id.String()),
		logging.String("destination", dest),
	)

	if err := a.downloader.DownloadAudio(ctx, url, template, ffmpegPath); err != nil {
		staging.Remove(dest, a.logger)
		return "", services.Wrap(services.ErrExternalTool, "audio", "download", "yt-dlp audio extraction failed", err)
	}
	if _, err := os.Stat(dest); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "audio", "download", fmt.Sprintf("expected audio at %s", dest), err)
	}
	return dest, nil
}

// templateFor converts a concrete mp3 path into a yt-dlp output template
// so the extractor can write its intermediate container before the mp3
// postprocessing step renames it.
func templateFor(dest string) string {
	base := dest[:len(dest)-len(filepath.Ext(dest))]
	return base + ".%(ext)s"
}
