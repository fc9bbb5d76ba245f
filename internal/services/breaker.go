package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerCompleter fails fast once the wrapped provider has failed
// maxFailures times in a row, and tries it again after openFor.
type BreakerCompleter struct {
	next Completer
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerCompleter(name string, next Completer, maxFailures uint32, openFor time.Duration) *BreakerCompleter {
	if maxFailures == 0 {
		maxFailures = 5
	}
	if openFor <= 0 {
		openFor = 60 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// Client disconnects are not provider failures
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("⚠ Circuit breaker %s: %s → %s", name, from, to)
		},
	}

	return &BreakerCompleter{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Complete(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (b *BreakerCompleter) State() gobreaker.State {
	return b.cb.State()
}
