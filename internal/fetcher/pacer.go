package fetcher

import (
	"context"
	"time"
)

// Pacer enforces a fixed pause between consecutive requests. The first Wait
// returns immediately, so there is never a pause after the last request.
type Pacer struct {
	delay   time.Duration
	started bool
}

func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

func (p *Pacer) Wait(ctx context.Context) error {
	if !p.started {
		p.started = true
		return ctx.Err()
	}
	if p.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
