package application

import "context"

// Recorder captures a clip of the given length and returns the path of the
// written audio file.
type Recorder interface {
	Record(ctx context.Context, seconds float64) (string, error)
}
