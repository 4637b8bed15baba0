// Package captions retrieves existing caption tracks for a video.
//
// Absence of captions is a normal outcome, not an error: every failure mode
// (captions disabled, no track in the preferred languages, transient fetch
// error) collapses into ErrNoCaptions, which is the signal that routes a
// request onto the audio fallback path. A single attempt is made per
// request; retrying is pointless when absence is expected and common.
package captions
