// internal/config/normalize.go
package config

// Reference defaults. The asymmetric axis priority is intentional and
// MUST NOT be "corrected" to a symmetric split.
const (
	DefaultAxisPriority     = 0.5
	DefaultProbeTimeoutMs   = 3000
	DefaultProbeIntervalMs  = 5000
	DefaultPublishTimeoutMs = 5000
	DefaultLinkTimeoutMs    = 1000
	DefaultPollIntervalMs   = 1000
	DefaultHistoryLimit     = 100
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	p := &cfg.Pero

	if p.Control.AxisPriority == 0 {
		p.Control.AxisPriority = DefaultAxisPriority
	}
	if p.Stream.ProbeTimeoutMs == 0 {
		p.Stream.ProbeTimeoutMs = DefaultProbeTimeoutMs
	}
	if p.Stream.ProbeIntervalMs == 0 {
		p.Stream.ProbeIntervalMs = DefaultProbeIntervalMs
	}
	if p.Document.TimeoutMs == 0 {
		p.Document.TimeoutMs = DefaultPublishTimeoutMs
	}
	if p.DirectLink != nil && p.DirectLink.TimeoutMs == 0 {
		p.DirectLink.TimeoutMs = DefaultLinkTimeoutMs
	}
	if p.Telemetry.PollIntervalMs == 0 {
		p.Telemetry.PollIntervalMs = DefaultPollIntervalMs
	}
	if p.Telemetry.HistoryLimit == 0 {
		p.Telemetry.HistoryLimit = DefaultHistoryLimit
	}
}
