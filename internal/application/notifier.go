package application

import "context"

// Notifier forwards an analysis result somewhere outside the console.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NoopNotifier discards results when no notification channel is configured.
type NoopNotifier struct{}

func (n *NoopNotifier) Notify(_ context.Context, _ string) error {
	return nil
}
