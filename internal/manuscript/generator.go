package manuscript

import (
	"context"
	"log/slog"
	"strings"

	"tublisher/internal/logging"
)

// TextBackend rewrites a caption transcript into chapter markdown.
type TextBackend interface {
	Generate(ctx context.Context, instruction, content string) (string, error)
	Configured() bool
}

// AudioBackend rewrites a staged audio file into chapter markdown.
type AudioBackend interface {
	GenerateFromAudio(ctx context.Context, instruction, audioPath string) (string, error)
	Configured() bool
}

// Result is the outcome of manuscript generation. Markdown is always
// populated; when Placeholder is set it holds the unavailable notice
// and Reason carries the underlying cause.
type Result struct {
	Markdown    string
	Backend     Backend
	Placeholder bool
	Reason      string
}

// Unavailable builds a placeholder Result for a backend that never ran.
func Unavailable(backend Backend, reason string) Result {
	return Result{
		Markdown:    unavailableManuscript(backend, reason),
		Backend:     backend,
		Placeholder: true,
		Reason:      reason,
	}
}

// Generator routes a Source to the matching backend.
type Generator struct {
	text   TextBackend
	audio  AudioBackend
	logger *slog.Logger
}

// NewGenerator constructs a Generator over the two backends.
func NewGenerator(text TextBackend, audio AudioBackend, logger *slog.Logger) *Generator {
	return &Generator{
		text:   text,
		audio:  audio,
		logger: logging.WithComponent(logger, "manuscript"),
	}
}

// Generate produces chapter markdown for the source. Backend failures
// and missing credentials never propagate as errors; they degrade to a
// placeholder manuscript so document assembly always has a body.
func (g *Generator) Generate(ctx context.Context, source Source) Result {
	if source.IsAudio() {
		return g.generateFromAudio(ctx, source.audioPath)
	}
	return g.generateFromCaptions(ctx, source.transcript)
}

func (g *Generator) generateFromCaptions(ctx context.Context, transcript string) Result {
	if g.text == nil || !g.text.Configured() {
		g.logger.Warn("text backend not configured, emitting placeholder")
		return Unavailable(BackendText, "text rewriting backend is not configured")
	}
	markdown, err := g.text.Generate(ctx, editorialInstruction, truncateTranscript(transcript))
	if err != nil {
		g.logger.Warn("text backend failed, emitting placeholder", logging.Error(err))
		return Unavailable(BackendText, err.Error())
	}
	return g.finish(BackendText, markdown)
}

func (g *Generator) generateFromAudio(ctx context.Context, audioPath string) Result {
	if g.audio == nil || !g.audio.Configured() {
		g.logger.Warn("audio backend not configured, emitting placeholder")
		return Unavailable(BackendAudio, "audio rewriting backend is not configured")
	}
	markdown, err := g.audio.GenerateFromAudio(ctx, audioDirective, audioPath)
	if err != nil {
		g.logger.Warn("audio backend failed, emitting placeholder", logging.Error(err))
		return Unavailable(BackendAudio, err.Error())
	}
	return g.finish(BackendAudio, markdown)
}

func (g *Generator) finish(backend Backend, markdown string) Result {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		g.logger.Warn("backend returned empty manuscript, emitting placeholder",
			logging.String("backend", string(backend)),
		)
		return Unavailable(backend, "backend returned an empty manuscript")
	}
	return Result{Markdown: markdown, Backend: backend}
}
