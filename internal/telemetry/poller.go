// internal/telemetry/poller.go
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Poller is a dumb, clock-driven reader. One goroutine. No overlap.
// No retries beyond the fixed interval.
type Poller struct {
	source   Source
	store    *Store // optional; nil disables history
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.RWMutex
	latest Sample
	seen   bool
}

// NewPoller creates a poller with immutable config.
func NewPoller(source Source, store *Store, interval time.Duration, logger *slog.Logger) (*Poller, error) {
	if source == nil {
		return nil, errors.New("telemetry poller: source required")
	}
	if interval <= 0 {
		return nil, errors.New("telemetry poller: interval must be > 0")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		source:   source,
		store:    store,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Run starts the ticker loop. Blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce performs exactly one fetch cycle. Transport errors are
// absorbed and logged; the previous sample stays current.
func (p *Poller) pollOnce(ctx context.Context) {
	rec, err := p.source.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("telemetry fetch failed", "error", err)
		}
		return
	}

	sample := DecodeRecord(rec, p.now())

	p.mu.Lock()
	p.latest = sample
	p.seen = true
	p.mu.Unlock()

	if p.store != nil {
		if err := p.store.Append(ctx, sample); err != nil {
			p.logger.Warn("telemetry history append failed", "error", err)
		}
	}
}

// Latest returns the most recent sample and whether one exists yet.
func (p *Poller) Latest() (Sample, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, p.seen
}
