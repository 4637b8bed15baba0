// Package manuscript turns raw video content into book-chapter
// markdown via an LLM backend, degrading to a placeholder manuscript
// when generation cannot run.
package manuscript

// Backend identifies which rewriting backend produced a manuscript.
type Backend string

const (
	BackendText  Backend = "deepseek"
	BackendAudio Backend = "gemini"
)

type sourceKind int

const (
	sourceCaptions sourceKind = iota
	sourceAudio
)

// Source is the input material for one manuscript. It is either a
// caption transcript or a staged audio file, never both.
type Source struct {
	kind       sourceKind
	transcript string
	audioPath  string
}

// CaptionSource wraps a caption transcript.
func CaptionSource(transcript string) Source {
	return Source{kind: sourceCaptions, transcript: transcript}
}

// AudioSource wraps a staged audio file path.
func AudioSource(path string) Source {
	return Source{kind: sourceAudio, audioPath: path}
}

// IsAudio reports whether the source carries audio rather than text.
func (s Source) IsAudio() bool {
	return s.kind == sourceAudio
}
