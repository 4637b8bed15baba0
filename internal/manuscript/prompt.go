package manuscript

import (
	"fmt"
	"unicode/utf8"
)

// editorialInstruction is the fixed system prompt for both backends.
// The backend receives the raw material as the user message (text) or
// as an attached file (audio).
const editorialInstruction = `You are an editor turning spoken video content into a book chapter.

Rewrite the provided material as a single, well-structured chapter in Markdown:
- Start with a level-1 heading that captures the topic.
- Open with a short introductory paragraph, organize the body into sections with level-2 headings, and close with a concluding paragraph.
- Convert spoken fragments into complete, readable prose. Remove filler words, repetitions, and timestamps.
- Use an expository tone; do not address the reader in the second person.
- Mark key concepts in bold.
- Preserve every substantive point from the source. Do not invent facts.
- Write in the same language as the source material.
- Output only the Markdown chapter, with no preamble or commentary.`

// audioDirective extends the instruction for the audio backend, which
// must transcribe before rewriting.
const audioDirective = editorialInstruction + `

The material is an attached audio recording. First transcribe it, then apply the rewriting rules above to the transcription.`

// maxTranscriptChars bounds the text sent to the chat backend so a
// multi-hour transcript cannot blow the model's context window. The
// tail is dropped; a truncated chapter beats a failed request.
const maxTranscriptChars = 80000

// unavailableManuscript builds the placeholder body returned when a
// backend cannot run. The reason is rendered as visible content so the
// reader learns why the chapter is missing without digging through
// server logs.
func unavailableManuscript(backend Backend, reason string) string {
	return fmt.Sprintf(`# Generation Unavailable

This book could not include a rewritten chapter for the requested video.

**Backend:** %s

**Reason:** %s

Please retry later, or check the server configuration if the problem persists.`, backend, reason)
}

func truncateTranscript(transcript string) string {
	if len(transcript) <= maxTranscriptChars {
		return transcript
	}
	cut := transcript[:maxTranscriptChars]
	// Avoid splitting a multi-byte sequence at the boundary.
	for len(cut) > 0 {
		if r, size := utf8.DecodeLastRuneInString(cut); r != utf8.RuneError || size != 1 {
			break
		}
		cut = cut[:len(cut)-1]
	}
	return cut
}
