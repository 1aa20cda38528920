// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
pero:
  vehicle_id: pero-1
  control:
    radius: 70
    dead_zone: 20
  stream:
    base_url: http://cam.local/stream
    probe_interval_ms: 5000
  document:
    endpoint: https://db.example/pero/control.json
    auth: secret
  direct_link:
    endpoint: 10.0.0.5:502
    unit_id: 1
    coil_base: 100
  telemetry:
    endpoint: https://db.example/pero/telemetry.json
    history_db: db/telemetry.db
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pero.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	p := cfg.Pero
	if p.VehicleID != "pero-1" {
		t.Fatalf("vehicle_id=%q", p.VehicleID)
	}
	if p.Control.Radius != 70 || p.Control.DeadZone != 20 {
		t.Fatalf("control geometry wrong: %+v", p.Control)
	}
	if p.Document.Auth != "secret" {
		t.Fatalf("document auth wrong: %+v", p.Document)
	}
	if p.DirectLink == nil || p.DirectLink.CoilBase != 100 {
		t.Fatalf("direct_link wrong: %+v", p.DirectLink)
	}
	if p.Telemetry.HistoryDB != "db/telemetry.db" {
		t.Fatalf("telemetry wrong: %+v", p.Telemetry)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
	Normalize(cfg)
	if p := cfg.Pero; p.Control.AxisPriority != DefaultAxisPriority {
		t.Fatalf("axis_priority not defaulted: %v", p.Control.AxisPriority)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("pero: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error")
	}
}
