// internal/stream/monitor_test.go
package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func testMonitor(t *testing.T, baseURL string, interval time.Duration) *Monitor {
	t.Helper()
	p, err := NewProber(baseURL, time.Second)
	if err != nil {
		t.Fatalf("NewProber() err=%v", err)
	}
	return NewMonitor(p, interval, nil)
}

func TestMonitor_ProbesImmediatelyOnStart(t *testing.T) {
	var probes atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
	}))
	defer srv.Close()

	m := testMonitor(t, srv.URL, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	waitFor(t, func() bool { return probes.Load() == 1 })
	waitFor(t, func() bool {
		s := m.Snapshot()
		return s.CurrentURL != "" && !s.HasError
	})
}

func TestMonitor_FailureKeepsLastGood(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				conn.Close()
			}
			return
		}
	}))
	defer srv.Close()

	m := testMonitor(t, srv.URL, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	waitFor(t, func() bool { return m.Snapshot().LastGoodURL != "" })
	good := m.Snapshot().LastGoodURL

	fail.Store(true)
	m.RefreshVisible()

	waitFor(t, func() bool { return m.Snapshot().HasError })

	s := m.Snapshot()
	if s.CurrentURL != good || s.LastGoodURL != good {
		t.Fatalf("expected fallback to %q, got %+v", good, s)
	}
}

func TestMonitor_RefreshClearsErrorOptimistically(t *testing.T) {
	m := NewMonitor(&Prober{baseURL: "http://unreachable.invalid", client: &http.Client{Timeout: time.Second}, now: time.Now}, time.Hour, nil)

	m.apply(ProbeResult{Err: contextErr()})
	if !m.Snapshot().HasError {
		t.Fatalf("expected error state")
	}

	// Refresh clears the flag before any probe resolves; Run is not
	// even started here.
	m.Refresh()
	if m.Snapshot().HasError {
		t.Fatalf("expected optimistic error clear")
	}
}

func TestMonitor_ReportRenderFailure(t *testing.T) {
	m := NewMonitor(&Prober{baseURL: "http://cam.invalid", client: http.DefaultClient, now: time.Now}, time.Hour, nil)

	m.apply(ProbeResult{URL: "http://cam.invalid/stream?t=1"})

	m.ReportRenderFailure()

	s := m.Snapshot()
	if !s.HasError {
		t.Fatalf("render failure must set the error flag, got %+v", s)
	}
	if s.CurrentURL != "http://cam.invalid/stream?t=1" {
		t.Fatalf("render failure must fall back to last good, got %+v", s)
	}
}

func TestMonitor_StopsOnContextEnd(t *testing.T) {
	var probes atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
	}))
	defer srv.Close()

	m := testMonitor(t, srv.URL, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool { return probes.Load() >= 3 })
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}

	// Drain any probe that was already in flight at cancel.
	time.Sleep(20 * time.Millisecond)

	// No further probes once the session is torn down.
	n := probes.Load()
	time.Sleep(50 * time.Millisecond)
	if probes.Load() != n {
		t.Fatalf("probes continued after teardown")
	}
}

func contextErr() error {
	return context.DeadlineExceeded
}
