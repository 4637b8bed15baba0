package captions

import (
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"strings"
)

// timedText mirrors the transcript XML served for a caption track.
type timedText struct {
	XMLName xml.Name   `xml:"transcript"`
	Texts   []fragment `xml:"text"`
}

type fragment struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Body  string `xml:",chardata"`
}

// joinFragments decodes timedtext XML and concatenates the fragment texts in
// source order with single-space separators. Fragment-internal whitespace
// (line breaks inside a cue) is collapsed as well.
func joinFragments(body []byte) (string, error) {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}

	parts := make([]string, 0, len(doc.Texts))
	for _, frag := range doc.Texts {
		// Track payloads HTML-escape twice; the XML decoder removed one layer.
		text := html.UnescapeString(frag.Body)
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		parts = append(parts, strings.Join(fields, " "))
	}
	if len(parts) == 0 {
		return "", errors.New("transcript empty")
	}
	return strings.Join(parts, " "), nil
}
