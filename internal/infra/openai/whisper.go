package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"voice-analysis/internal/domain"
)

type WhisperClient struct {
	client   *goopenai.Client
	model    string
	language string
}

func NewWhisperClient(apiKey, model, language string) *WhisperClient {
	return NewWhisperClientWithURL(apiKey, model, language, defaultBaseURL)
}

func NewWhisperClientWithURL(apiKey, model, language, baseURL string) *WhisperClient {
	if model == "" {
		model = goopenai.Whisper1
	}
	return &WhisperClient{
		client:   newAPIClient(apiKey, baseURL),
		model:    model,
		language: language,
	}
}

// Transcribe uploads the audio file at path and returns the recognized text.
// Every failure is reported as domain.ErrTranscription.
func (c *WhisperClient) Transcribe(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrTranscription, domain.ErrNoRecording)
	}

	resp, err := c.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    c.model,
		FilePath: path,
		Language: c.language,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTranscription, err)
	}

	return resp.Text, nil
}
