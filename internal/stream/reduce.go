// internal/stream/reduce.go
package stream

// Apply folds one probe outcome into the state.
// Pure, total, idempotent per result: applying the same result twice is
// a no-op after the first.
func Apply(s State, r ProbeResult) State {
	if r.Err == nil {
		return State{
			CurrentURL:  r.URL,
			LastGoodURL: r.URL,
			HasError:    false,
		}
	}

	if s.LastGoodURL != "" {
		return State{
			CurrentURL:  s.LastGoodURL,
			LastGoodURL: s.LastGoodURL,
			HasError:    true,
		}
	}

	return State{HasError: true}
}
