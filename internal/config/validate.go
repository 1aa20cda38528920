// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	p := &cfg.Pero

	// ------------------------------------------------------------
	// CONTROL GEOMETRY
	// ------------------------------------------------------------

	if p.Control.Radius <= 0 {
		return fmt.Errorf("control: radius must be > 0, got %v", p.Control.Radius)
	}
	if p.Control.DeadZone < 0 || p.Control.DeadZone >= p.Control.Radius {
		return fmt.Errorf(
			"control: dead_zone must satisfy 0 <= dead_zone < radius, got %v (radius %v)",
			p.Control.DeadZone, p.Control.Radius,
		)
	}
	// Zero means "use the default"; anything else must be in (0, 1].
	if p.Control.AxisPriority < 0 || p.Control.AxisPriority > 1 {
		return fmt.Errorf(
			"control: axis_priority must satisfy 0 < axis_priority <= 1, got %v",
			p.Control.AxisPriority,
		)
	}

	// ------------------------------------------------------------
	// STREAM
	// ------------------------------------------------------------

	if p.Stream.BaseURL == "" {
		return fmt.Errorf("stream: base_url is required")
	}
	if p.Stream.ProbeTimeoutMs < 0 {
		return fmt.Errorf("stream: probe_timeout_ms must not be negative")
	}
	if p.Stream.ProbeIntervalMs < 0 {
		return fmt.Errorf("stream: probe_interval_ms must not be negative")
	}

	// ------------------------------------------------------------
	// DOCUMENT (primary sink, always required)
	// ------------------------------------------------------------

	if p.Document.Endpoint == "" {
		return fmt.Errorf("document: endpoint is required")
	}
	if p.Document.TimeoutMs < 0 {
		return fmt.Errorf("document: timeout_ms must not be negative")
	}

	// ------------------------------------------------------------
	// DIRECT LINK (opt-in)
	// ------------------------------------------------------------

	if p.DirectLink != nil {
		if p.DirectLink.Endpoint == "" {
			return fmt.Errorf("direct_link: endpoint is required when direct_link is set")
		}
		if p.DirectLink.TimeoutMs < 0 {
			return fmt.Errorf("direct_link: timeout_ms must not be negative")
		}
	}

	// ------------------------------------------------------------
	// TELEMETRY (opt-in via endpoint)
	// ------------------------------------------------------------

	if p.Telemetry.PollIntervalMs < 0 {
		return fmt.Errorf("telemetry: poll_interval_ms must not be negative")
	}
	if p.Telemetry.HistoryLimit < 0 {
		return fmt.Errorf("telemetry: history_limit must not be negative")
	}
	if p.Telemetry.Endpoint == "" && p.Telemetry.HistoryDB != "" {
		return fmt.Errorf("telemetry: history_db is set but endpoint is empty")
	}

	return nil
}
