package main

import (
	"log/slog"
	"net/http"
	"time"

	"tublisher/internal/audio"
	"tublisher/internal/book"
	"tublisher/internal/captions"
	"tublisher/internal/config"
	"tublisher/internal/manuscript"
	"tublisher/internal/metadata"
	"tublisher/internal/pipeline"
	"tublisher/internal/services/deepseek"
	"tublisher/internal/services/gemini"
)

// buildPipeline wires the conversion stages from configuration.
func buildPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	captionClient := captions.NewClient(cfg.Captions.Languages,
		captions.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Captions.TimeoutSeconds) * time.Second}),
	)

	textBackend := deepseek.NewClient(cfg.DeepSeek.APIKey,
		deepseek.WithBaseURL(cfg.DeepSeek.BaseURL),
		deepseek.WithModel(cfg.DeepSeek.Model),
		deepseek.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.DeepSeek.TimeoutSeconds) * time.Second}),
	)
	audioBackend := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, logger)

	return pipeline.New(
		metadata.NewResolver(nil, logger),
		captionClient,
		audio.NewAcquirer(cfg.Paths.StagingDir, cfg.Audio.FFmpegLocation, logger,
			audio.WithTimeout(time.Duration(cfg.Audio.TimeoutSeconds)*time.Second)),
		manuscript.NewGenerator(textBackend, audioBackend, logger),
		book.NewAssembler(cfg.Paths.StagingDir, cfg.Book.Author, cfg.Book.Language),
		logger,
	)
}
