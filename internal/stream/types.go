// internal/stream/types.go
package stream

import "time"

// State is what the dashboard is told to display.
// Invariant: when HasError is true, CurrentURL equals LastGoodURL if a
// last-good URL exists, and is empty otherwise. A URL known to be
// broken is never surfaced while a better one exists.
type State struct {
	CurrentURL  string
	LastGoodURL string
	HasError    bool
}

// ProbeResult is the outcome of one connectivity probe.
// Err non-nil means the probe failed; URL is meaningful only on success.
type ProbeResult struct {
	URL string
	At  time.Time
	Err error
}
