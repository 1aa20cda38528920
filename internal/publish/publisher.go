// internal/publish/publisher.go
package publish

import (
	"context"
	"log/slog"
)

// Sink delivers one frame to one destination.
type Sink interface {
	Name() string
	Publish(ctx context.Context, f Frame) error
}

// Publisher fans a frame out to every configured sink.
// Fire-and-forget: errors are logged, never retried. Each state change
// issues an independent write; nothing is coalesced.
type Publisher struct {
	sinks  []Sink
	logger *slog.Logger
}

// New creates a publisher over the given sinks.
func New(logger *slog.Logger, sinks ...Sink) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{sinks: sinks, logger: logger}
}

// Publish delivers the frame to all sinks in order.
func (p *Publisher) Publish(ctx context.Context, f Frame) {
	for _, s := range p.sinks {
		if err := s.Publish(ctx, f); err != nil {
			p.logger.Warn("publish failed",
				"sink", s.Name(),
				"command", f.Command.String(),
				"error", err,
			)
		}
	}
}
