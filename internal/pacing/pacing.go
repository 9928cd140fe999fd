// Package pacing spaces outbound requests so every fetcher, across all
// workers, respects one shared minimum interval toward the news sites.
package pacing

import (
	"context"
	"sync"
	"time"
)

// Gate blocks until the caller may issue the next outbound request.
type Gate interface {
	Wait(ctx context.Context) error
}

// MinIntervalGate serializes callers and enforces a minimum gap between
// consecutive passes. All workers share one gate, so total request rate
// stays bounded no matter the pool size.
type MinIntervalGate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func NewMinIntervalGate(interval time.Duration) *MinIntervalGate {
	return &MinIntervalGate{interval: interval}
}

func (g *MinIntervalGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	now := time.Now()
	next := g.last.Add(g.interval)
	if next.Before(now) {
		next = now
	}
	g.last = next
	g.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopGate never blocks. Tests and one-off CLI runs use it.
type NopGate struct{}

func (NopGate) Wait(ctx context.Context) error {
	return ctx.Err()
}
