package application

import "context"

// Analyzer sends a transcript to a language model, using prompt as the
// system instruction, and returns the generated text.
type Analyzer interface {
	Analyze(ctx context.Context, transcript, prompt string) (string, error)
}
