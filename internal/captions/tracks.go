package captions

import (
	"fmt"

	"golang.org/x/text/language"
)

// selectTrack picks the caption track best matching the preference order.
// The first preferred language with an available track wins; there is no
// quality comparison across languages. Tracks with unparseable language
// codes are ignored.
func selectTrack(tracks []captionTrack, preferred []string) (captionTrack, error) {
	var (
		supported []language.Tag
		indexes   []int
	)
	for i, track := range tracks {
		tag, err := language.Parse(track.LanguageCode)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		indexes = append(indexes, i)
	}
	if len(supported) == 0 {
		return captionTrack{}, fmt.Errorf("%w: no recognizable track languages", ErrNoCaptions)
	}

	var desired []language.Tag
	for _, lang := range preferred {
		tag, err := language.Parse(lang)
		if err != nil {
			continue
		}
		desired = append(desired, tag)
	}
	if len(desired) == 0 {
		// No usable preference list; fall back to the first track.
		return tracks[indexes[0]], nil
	}

	matcher := language.NewMatcher(supported)
	_, index, confidence := matcher.Match(desired...)
	if confidence == language.No {
		return captionTrack{}, fmt.Errorf("%w: no track in preferred languages", ErrNoCaptions)
	}
	return tracks[indexes[index]], nil
}
