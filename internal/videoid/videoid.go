// Package videoid extracts canonical video identifiers from user-supplied URLs.
package videoid

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidReference marks input that does not contain a video identifier.
// It is terminal and reported to the caller as a client fault.
var ErrInvalidReference = errors.New("invalid video reference")

// ID is an 11-character platform-assigned video identifier. It is the
// correctness key for caption lookups, staging paths, and the output
// filename, and is immutable once extracted.
type ID string

func (id ID) String() string { return string(id) }

// Supported URL shapes. The identifier is always 11 characters drawn from
// [A-Za-z0-9_-].
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:www\.|m\.)?youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/(?:embed|v|shorts|live)/([A-Za-z0-9_-]{11})`),
}

var bareID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Parse extracts the video identifier from a raw URL string. It is a pure
// function: no I/O, no side effects. Strings without an embedded identifier
// yield ErrInvalidReference.
func Parse(raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidReference
	}
	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(trimmed); len(match) > 1 {
			return ID(match[1]), nil
		}
	}
	if bareID.MatchString(trimmed) {
		return ID(trimmed), nil
	}
	return "", ErrInvalidReference
}

// NormalizeURL trims the input and corrects a missing scheme so downstream
// tools receive a fetchable URL. Bare identifiers are expanded to a full
// watch URL.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	if bareID.MatchString(trimmed) {
		return "https://www.youtube.com/watch?v=" + trimmed
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "//") {
		return "https:" + trimmed
	}
	return "https://" + trimmed
}

// WatchURL returns the canonical watch page URL for an identifier.
func WatchURL(id ID) string {
	return "https://www.youtube.com/watch?v=" + string(id)
}
