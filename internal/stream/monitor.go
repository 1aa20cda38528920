// internal/stream/monitor.go
package stream

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultProbeInterval is the steady-state re-probe cadence.
const DefaultProbeInterval = 5 * time.Second

// Monitor owns the stream state for one viewing session.
// Probes may overlap; Apply is serialized under mu and the last result
// to resolve wins. That race is carried over from the reference
// behavior, not corrected.
type Monitor struct {
	prober   *Prober
	interval time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	state State

	kick chan struct{}
}

// NewMonitor creates a monitor. A non-positive interval falls back to
// DefaultProbeInterval.
func NewMonitor(p *Prober, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		prober:   p,
		interval: interval,
		logger:   logger,
		kick:     make(chan struct{}, 1),
	}
}

// Run drives probes for the lifetime of ctx: one immediately, then one
// per interval, plus whatever the triggers request. The ticker stops
// when ctx ends, however it ends.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.launchProbe(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.launchProbe(ctx)
		case <-m.kick:
			m.launchProbe(ctx)
		}
	}
}

// launchProbe starts one probe without waiting for it to resolve.
func (m *Monitor) launchProbe(ctx context.Context) {
	go func() {
		res := m.prober.ProbeOnce(ctx)
		if res.Err != nil && ctx.Err() == nil {
			m.logger.Warn("stream probe failed", "error", res.Err)
		}
		m.apply(res)
	}()
}

func (m *Monitor) apply(res ProbeResult) {
	m.mu.Lock()
	m.state = Apply(m.state, res)
	m.mu.Unlock()
}

// Snapshot returns the current state.
func (m *Monitor) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Refresh is the user-initiated re-probe. The error flag clears
// optimistically so a stale banner disappears before the round trip.
func (m *Monitor) Refresh() {
	m.mu.Lock()
	m.state.HasError = false
	m.mu.Unlock()
	m.requestProbe()
}

// RefreshVisible re-probes when the dashboard returns to the
// foreground. Supplementary to the interval, never a replacement.
func (m *Monitor) RefreshVisible() {
	m.requestProbe()
}

func (m *Monitor) requestProbe() {
	select {
	case m.kick <- struct{}{}:
	default:
		// a probe request is already pending; coalesce
	}
}

// ReportRenderFailure feeds a renderer error through the same reducer
// as a failed probe. The display surface reports no detail beyond the
// fact of the failure.
func (m *Monitor) ReportRenderFailure() {
	m.apply(ProbeResult{
		At:  time.Now(),
		Err: errors.New("stream: render failure reported"),
	})
}
