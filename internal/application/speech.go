package application

import (
	"context"
	"fmt"

	"voice-analysis/internal/domain"
)

type SpeechToText interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// NoopSTT is used when no speech-to-text credentials are configured.
type NoopSTT struct{}

func (n *NoopSTT) Transcribe(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("%w: speech-to-text not configured: set openai.api_key or OPENAI_API_KEY", domain.ErrTranscription)
}
