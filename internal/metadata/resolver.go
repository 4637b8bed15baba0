// Package metadata resolves display metadata for a video.
package metadata

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"golang.org/x/text/unicode/norm"

	"tublisher/internal/logging"
)

// PlaceholderTitle substitutes for the video title when the lookup fails.
// A missing title must never block manuscript generation.
const PlaceholderTitle = "Untitled Video"

const defaultLookupTimeout = 30 * time.Second

// InfoFetcher extracts the title for a video URL.
type InfoFetcher interface {
	Title(ctx context.Context, url string) (string, error)
}

// YtdlpFetcher queries video metadata through yt-dlp without downloading.
type YtdlpFetcher struct{}

func (YtdlpFetcher) Title(ctx context.Context, url string) (string, error) {
	result, err := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		PrintJSON().
		Run(ctx, url)
	if err != nil {
		return "", err
	}
	infos, err := result.GetExtractedInfo()
	if err != nil {
		return "", err
	}
	for _, info := range infos {
		if info != nil && info.Title != nil && strings.TrimSpace(*info.Title) != "" {
			return *info.Title, nil
		}
	}
	return "", errors.New("metadata: no title field")
}

// Resolver fetches a video title, absorbing every failure into a placeholder.
type Resolver struct {
	fetcher InfoFetcher
	timeout time.Duration
	logger  *slog.Logger
}

// NewResolver constructs a Resolver around the given fetcher.
func NewResolver(fetcher InfoFetcher, logger *slog.Logger) *Resolver {
	if fetcher == nil {
		fetcher = YtdlpFetcher{}
	}
	return &Resolver{
		fetcher: fetcher,
		timeout: defaultLookupTimeout,
		logger:  logging.WithComponent(logger, "metadata"),
	}
}

// Resolve returns the video title in canonical composed form, or the
// placeholder when the lookup fails. Some platform locales deliver
// decomposed glyph sequences that render as broken characters in e-book
// viewers, so the title is always re-composed here.
func (r *Resolver) Resolve(ctx context.Context, url string) string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	title, err := r.fetcher.Title(ctx, url)
	if err != nil {
		r.logger.Warn("title lookup failed, using placeholder",
			logging.String("url", url),
			logging.Error(err),
		)
		return PlaceholderTitle
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return PlaceholderTitle
	}
	return norm.NFC.String(title)
}
