// Package pipeline orchestrates the conversion of a video URL into a
// staged EPUB file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tublisher/internal/captions"
	"tublisher/internal/logging"
	"tublisher/internal/manuscript"
	"tublisher/internal/staging"
	"tublisher/internal/videoid"
)

// TitleResolver fetches a display title, absorbing failures.
type TitleResolver interface {
	Resolve(ctx context.Context, url string) string
}

// CaptionFetcher retrieves a caption transcript for a video.
type CaptionFetcher interface {
	Transcript(ctx context.Context, videoID string) (string, error)
}

// AudioAcquirer stages the video's audio track.
type AudioAcquirer interface {
	Acquire(ctx context.Context, id videoid.ID, url string) (string, error)
}

// Generator produces chapter markdown from a source.
type Generator interface {
	Generate(ctx context.Context, source manuscript.Source) manuscript.Result
}

// Assembler packages a manuscript into an EPUB file.
type Assembler interface {
	Assemble(title, manuscriptMarkdown string, id videoid.ID, sourceURL string) (string, error)
}

// Book describes a finished conversion. Path points at the staged EPUB;
// Filename is the name the client should save it under.
type Book struct {
	Path        string
	Filename    string
	VideoID     videoid.ID
	Title       string
	Backend     manuscript.Backend
	Placeholder bool
}

// Pipeline wires the conversion stages together.
type Pipeline struct {
	titles    TitleResolver
	captions  CaptionFetcher
	audio     AudioAcquirer
	generator Generator
	assembler Assembler
	logger    *slog.Logger
}

// New constructs a Pipeline over the given stages.
func New(titles TitleResolver, captionFetcher CaptionFetcher, audio AudioAcquirer, generator Generator, assembler Assembler, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		titles:    titles,
		captions:  captionFetcher,
		audio:     audio,
		generator: generator,
		assembler: assembler,
		logger:    logging.WithComponent(logger, "pipeline"),
	}
}

// CreateBook runs the full conversion. Only two failures propagate: an
// unparseable reference and a packaging error. Everything between those
// stages degrades into the manuscript itself.
func (p *Pipeline) CreateBook(ctx context.Context, rawURL string) (Book, error) {
	id, err := videoid.Parse(rawURL)
	if err != nil {
		return Book{}, err
	}
	// Downstream tools get the caller's URL with the scheme corrected;
	// the book's attribution always links the canonical watch page.
	url := videoid.NormalizeURL(rawURL)

	title := p.titles.Resolve(ctx, url)

	result := p.generateManuscript(ctx, id, url)

	path, err := p.assembler.Assemble(title, result.Markdown, id, videoid.WatchURL(id))
	if err != nil {
		return Book{}, err
	}

	book := Book{
		Path:        path,
		Filename:    fmt.Sprintf("summary_%s.epub", id),
		VideoID:     id,
		Title:       title,
		Backend:     result.Backend,
		Placeholder: result.Placeholder,
	}
	p.logger.Info("book created",
		logging.String("video_id", id.String()),
		logging.String("title", title),
		logging.String("backend", string(result.Backend)),
		logging.Bool("placeholder", result.Placeholder),
	)
	return book, nil
}

// generateManuscript routes caption text to the text backend and falls
// back to the audio path when no transcript exists. Any staged audio is
// removed before the manuscript is returned, whatever the backend did.
func (p *Pipeline) generateManuscript(ctx context.Context, id videoid.ID, url string) manuscript.Result {
	transcript, err := p.captions.Transcript(ctx, id.String())
	if err == nil {
		return p.generator.Generate(ctx, manuscript.CaptionSource(transcript))
	}
	if !errors.Is(err, captions.ErrNoCaptions) {
		p.logger.Warn("caption fetch failed, falling back to audio",
			logging.String("video_id", id.String()),
			logging.Error(err),
		)
	} else {
		p.logger.Info("no captions available, falling back to audio",
			logging.String("video_id", id.String()),
		)
	}

	audioPath, err := p.audio.Acquire(ctx, id, url)
	if err != nil {
		p.logger.Warn("audio acquisition failed, emitting placeholder",
			logging.String("video_id", id.String()),
			logging.Error(err),
		)
		return manuscript.Unavailable(manuscript.BackendAudio, err.Error())
	}
	defer staging.Remove(audioPath, p.logger)

	return p.generator.Generate(ctx, manuscript.AudioSource(audioPath))
}
