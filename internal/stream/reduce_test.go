// internal/stream/reduce_test.go
package stream

import (
	"errors"
	"testing"
)

func success(url string) ProbeResult {
	return ProbeResult{URL: url}
}

func failure() ProbeResult {
	return ProbeResult{Err: errors.New("probe failed")}
}

func TestApply_SuccessClearsError(t *testing.T) {
	states := []State{
		{},
		{CurrentURL: "A", LastGoodURL: "A", HasError: false},
		{CurrentURL: "A", LastGoodURL: "A", HasError: true},
		{HasError: true},
	}

	for _, s := range states {
		got := Apply(s, success("B"))
		want := State{CurrentURL: "B", LastGoodURL: "B", HasError: false}
		if got != want {
			t.Fatalf("Apply(%+v, Success(B))=%+v, want %+v", s, got, want)
		}
	}
}

func TestApply_FailureFallsBackToLastGood(t *testing.T) {
	s := State{CurrentURL: "A", LastGoodURL: "A", HasError: false}

	got := Apply(s, failure())
	want := State{CurrentURL: "A", LastGoodURL: "A", HasError: true}
	if got != want {
		t.Fatalf("Apply=%+v, want %+v", got, want)
	}
}

func TestApply_FailureWithoutLastGood(t *testing.T) {
	got := Apply(State{}, failure())
	want := State{HasError: true}
	if got != want {
		t.Fatalf("Apply=%+v, want %+v", got, want)
	}
}

func TestApply_Idempotent(t *testing.T) {
	results := []ProbeResult{success("A"), failure()}
	states := []State{
		{},
		{CurrentURL: "B", LastGoodURL: "B"},
		{CurrentURL: "B", LastGoodURL: "B", HasError: true},
	}

	for _, r := range results {
		for _, s := range states {
			once := Apply(s, r)
			twice := Apply(once, r)
			if once != twice {
				t.Fatalf("not idempotent: state=%+v result=%+v once=%+v twice=%+v", s, r, once, twice)
			}
		}
	}
}

// Scenario from the observed behavior: outage then recovery.
func TestApply_OutageThenRecovery(t *testing.T) {
	s := State{CurrentURL: "A", LastGoodURL: "A", HasError: false}

	s = Apply(s, failure())
	if want := (State{CurrentURL: "A", LastGoodURL: "A", HasError: true}); s != want {
		t.Fatalf("after failure: %+v, want %+v", s, want)
	}

	s = Apply(s, success("B"))
	if want := (State{CurrentURL: "B", LastGoodURL: "B", HasError: false}); s != want {
		t.Fatalf("after recovery: %+v, want %+v", s, want)
	}
}

// The invariant: a broken URL is never surfaced while a better one
// exists.
func TestApply_Invariant(t *testing.T) {
	states := []State{
		{},
		{CurrentURL: "A", LastGoodURL: "A"},
		{CurrentURL: "A", LastGoodURL: "A", HasError: true},
	}
	results := []ProbeResult{success("B"), failure()}

	for _, s := range states {
		for _, r := range results {
			got := Apply(s, r)
			if !got.HasError {
				continue
			}
			if got.LastGoodURL != "" && got.CurrentURL != got.LastGoodURL {
				t.Fatalf("invariant broken: %+v", got)
			}
			if got.LastGoodURL == "" && got.CurrentURL != "" {
				t.Fatalf("invariant broken: %+v", got)
			}
		}
	}
}
