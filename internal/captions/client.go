package captions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://www.youtube.com"
	defaultHTTPTimeout = 30 * time.Second
	userAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	captionsMarker = `"captions":`
	detailsMarker  = `,"videoDetails"`
)

// ErrNoCaptions reports that no usable caption track exists for a video.
// Callers treat it as a routing signal, never as a failure.
var ErrNoCaptions = errors.New("no transcript available")

// Client fetches caption tracks from the platform watch page.
type Client struct {
	baseURL    string
	languages  []string
	httpClient *http.Client
}

// Option customizes the captions client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the watch page origin (useful for tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs a captions client that prefers tracks in the given
// language order.
func NewClient(languages []string, opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		languages:  languages,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Transcript returns the caption fragments of the preferred available track
// concatenated in source order with single-space separators. Any failure
// along the way yields ErrNoCaptions.
func (c *Client) Transcript(ctx context.Context, videoID string) (string, error) {
	page, err := c.fetch(ctx, c.baseURL+"/watch?v="+videoID)
	if err != nil {
		return "", fmt.Errorf("%w: watch page: %v", ErrNoCaptions, err)
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoCaptions, err)
	}

	track, err := selectTrack(tracks, c.languages)
	if err != nil {
		return "", err
	}

	body, err := c.fetch(ctx, track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("%w: track fetch: %v", ErrNoCaptions, err)
	}

	transcript, err := joinFragments(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoCaptions, err)
	}
	return transcript, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", strings.Join(c.languages, ","))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// captionTrack mirrors the player JSON embedded in the watch page.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	raw := string(page)
	_, after, found := strings.Cut(raw, captionsMarker)
	if !found {
		return nil, errors.New("captions disabled or video unavailable")
	}
	end := strings.Index(after, detailsMarker)
	if end < 0 {
		return nil, errors.New("malformed player response")
	}

	var payload struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	}
	if err := json.Unmarshal([]byte(after[:end]), &payload); err != nil {
		return nil, fmt.Errorf("decode caption tracks: %w", err)
	}

	tracks := payload.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks listed")
	}
	return tracks, nil
}
