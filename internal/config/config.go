// internal/config/config.go
package config

type Config struct {
	Pero PeroConfig `yaml:"pero"`
}

type PeroConfig struct {
	VehicleID string `yaml:"vehicle_id"`

	Control    ControlConfig     `yaml:"control"`
	Stream     StreamConfig      `yaml:"stream"`
	Document   DocumentConfig    `yaml:"document"`
	DirectLink *DirectLinkConfig `yaml:"direct_link"`
	Telemetry  TelemetryConfig   `yaml:"telemetry"`
}

// ---- CONTROL GEOMETRY ----

type ControlConfig struct {
	Radius       float64 `yaml:"radius"`
	DeadZone     float64 `yaml:"dead_zone"`
	AxisPriority float64 `yaml:"axis_priority"`
}

// ---- STREAM ----

type StreamConfig struct {
	BaseURL         string `yaml:"base_url"`
	ProbeTimeoutMs  int    `yaml:"probe_timeout_ms"`
	ProbeIntervalMs int    `yaml:"probe_interval_ms"`
}

// ---- DOCUMENT (primary command sink) ----

type DocumentConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Auth      string `yaml:"auth"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- DIRECT LINK (optional, opt-in) ----

type DirectLinkConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	CoilBase  uint16 `yaml:"coil_base"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- TELEMETRY (optional; empty endpoint disables) ----

type TelemetryConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Auth           string `yaml:"auth"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
	HistoryDB      string `yaml:"history_db"`
	HistoryLimit   int    `yaml:"history_limit"`
}
