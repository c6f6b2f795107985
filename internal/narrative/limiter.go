package narrative

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limited wraps a Generator with a token-bucket rate limit on outgoing calls
type Limited struct {
	next    Generator
	limiter *rate.Limiter
}

// NewLimited limits gen to perSecond calls with the given burst.
// A non-positive perSecond returns gen unchanged.
func NewLimited(gen Generator, perSecond float64, burst int) Generator {
	if perSecond <= 0 {
		return gen
	}
	if burst < 1 {
		burst = 1
	}
	return &Limited{
		next:    gen,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Generate waits for a token and delegates to the wrapped provider
func (l *Limited) Generate(ctx context.Context, req Request) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("narrative rate limit wait: %w", err)
	}
	return l.next.Generate(ctx, req)
}
