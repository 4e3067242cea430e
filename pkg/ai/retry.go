package ai

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RetryCompleter retries a failing Completer with exponential backoff
type RetryCompleter struct {
	next       Completer
	maxRetries uint64
	newBackOff func() backoff.BackOff
	logger     *zap.Logger
}

// NewRetryCompleter wraps next; maxRetries counts attempts after the first
func NewRetryCompleter(next Completer, maxRetries uint64, logger *zap.Logger) *RetryCompleter {
	return &RetryCompleter{
		next:       next,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 2 * time.Second
			bo.MaxInterval = 10 * time.Second
			bo.MaxElapsedTime = 30 * time.Second
			return bo
		},
		logger: logger,
	}
}

func (r *RetryCompleter) Model() string {
	return r.next.Model()
}

func (r *RetryCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	var (
		result  string
		attempt int
	)
	op := func() error {
		attempt++
		out, err := r.next.Complete(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			if r.logger != nil {
				r.logger.Warn("🔄 Retrying completion",
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
			}
			return err
		}
		result = out
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.maxRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return "", err
	}
	return result, nil
}
