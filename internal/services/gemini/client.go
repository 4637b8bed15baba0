// Package gemini wraps the Gemini API used for the audio-based
// rewriting backend. The audio track is uploaded through the file API,
// referenced from the prompt, and deleted once generation completes.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tublisher/internal/logging"
)

const (
	defaultModel       = "gemini-1.5-flash-latest"
	fileActivePollTick = 2 * time.Second
	fileActiveTimeout  = 2 * time.Minute
)

// Client talks to the Gemini API.
type Client struct {
	apiKey string
	model  string
	logger *slog.Logger
}

// NewClient constructs a Gemini client. The model falls back to a
// sensible default when blank.
func NewClient(apiKey, model string, logger *slog.Logger) *Client {
	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
		logger: logging.WithComponent(logger, "gemini"),
	}
}

// Configured reports whether the client holds credentials.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GenerateFromAudio uploads the audio file, prompts the model with the
// instruction plus the uploaded track, and returns the generated text.
// The uploaded file is deleted best effort; a failed deletion is logged
// and never surfaces.
func (c *Client) GenerateFromAudio(ctx context.Context, instruction, audioPath string) (string, error) {
	if !c.Configured() {
		return "", errors.New("gemini generate: api key required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("gemini generate: create client: %w", err)
	}
	defer client.Close()

	uploaded, err := client.UploadFileFromPath(ctx, audioPath, &genai.UploadFileOptions{MIMEType: "audio/mpeg"})
	if err != nil {
		return "", fmt.Errorf("gemini generate: upload audio: %w", err)
	}
	defer func() {
		if err := client.DeleteFile(context.WithoutCancel(ctx), uploaded.Name); err != nil {
			c.logger.Warn("failed to delete uploaded audio",
				logging.String("file", uploaded.Name),
				logging.Error(err),
			)
		}
	}()

	if err := c.waitForActive(ctx, client, uploaded.Name); err != nil {
		return "", err
	}

	model := client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx,
		genai.Text(instruction),
		genai.FileData{URI: uploaded.URI, MIMEType: uploaded.MIMEType},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", errors.New("gemini generate: empty response")
	}
	return text, nil
}

// waitForActive polls the file API until the upload finishes server-side
// processing. Uploads are not immediately referenceable from prompts.
func (c *Client) waitForActive(ctx context.Context, client *genai.Client, name string) error {
	deadline := time.Now().Add(fileActiveTimeout)
	for {
		file, err := client.GetFile(ctx, name)
		if err != nil {
			return fmt.Errorf("gemini generate: poll file: %w", err)
		}
		switch file.State {
		case genai.FileStateActive:
			return nil
		case genai.FileStateFailed:
			return errors.New("gemini generate: file processing failed")
		}
		if time.Now().After(deadline) {
			return errors.New("gemini generate: file activation timed out")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(fileActivePollTick):
		}
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var out strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(out.String())
}
