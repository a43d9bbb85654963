package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Timed runs fn and logs its name and elapsed wall-clock time once it
// returns, whether or not it returned an error. A panic in fn is not logged.
func Timed[T any](logger *slog.Logger, name string, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	logger.Info("function executed",
		"function", name,
		"elapsed", fmt.Sprintf("%fs", time.Since(start).Seconds()),
	)
	return result, err
}

// TimeFunc wraps fn so that every call is measured with Timed.
func TimeFunc[In, Out any](logger *slog.Logger, name string, fn func(context.Context, In) (Out, error)) func(context.Context, In) (Out, error) {
	return func(ctx context.Context, in In) (Out, error) {
		return Timed(logger, name, func() (Out, error) {
			return fn(ctx, in)
		})
	}
}
