// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/nizzatkr/pero/internal/control"
	"github.com/nizzatkr/pero/internal/publish"
	"github.com/nizzatkr/pero/internal/stream"
	"github.com/nizzatkr/pero/internal/telemetry"
)

// ---- control ----

type controlRequest struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	SprayLeft  bool    `json:"spray_left"`
	SprayRight bool    `json:"spray_right"`
}

type controlResponse struct {
	Command string `json:"command"`
}

// handleControl classifies a joystick displacement and publishes the
// resulting command. Publishing is fire-and-forget: the response never
// waits on the sinks.
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid control request", http.StatusBadRequest)
		return
	}

	cmd := s.classifier.Classify(control.Offset{X: req.X, Y: req.Y})

	frame := publish.Frame{
		Command:    cmd,
		SprayLeft:  req.SprayLeft,
		SprayRight: req.SprayRight,
		At:         time.Now(),
	}
	go s.publisher.Publish(context.WithoutCancel(r.Context()), frame)

	s.writeJSON(w, http.StatusOK, controlResponse{Command: cmd.String()})
}

// ---- stream ----

type streamResponse struct {
	CurrentURL  string `json:"current_url"`
	LastGoodURL string `json:"last_good_url"`
	HasError    bool   `json:"has_error"`
}

func streamView(st stream.State) streamResponse {
	return streamResponse{
		CurrentURL:  st.CurrentURL,
		LastGoodURL: st.LastGoodURL,
		HasError:    st.HasError,
	}
}

func (s *Server) handleStream(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, streamView(s.monitor.Snapshot()))
}

// handleStreamRefresh is the manual retry affordance. The returned
// snapshot already has the error flag cleared optimistically.
func (s *Server) handleStreamRefresh(w http.ResponseWriter, _ *http.Request) {
	s.monitor.Refresh()
	s.writeJSON(w, http.StatusOK, streamView(s.monitor.Snapshot()))
}

func (s *Server) handleStreamVisible(w http.ResponseWriter, _ *http.Request) {
	s.monitor.RefreshVisible()
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderError runs a display-surface failure through the same
// reducer as a failed probe, so the dashboard gets the fallback URL in
// the response.
func (s *Server) handleRenderError(w http.ResponseWriter, _ *http.Request) {
	s.monitor.ReportRenderFailure()
	s.writeJSON(w, http.StatusOK, streamView(s.monitor.Snapshot()))
}

// ---- telemetry ----

type mapPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type telemetryResponse struct {
	Fields map[string]string `json:"fields"`
	Map    *mapPoint         `json:"map"`
	At     int64             `json:"at,omitempty"`
}

func (s *Server) handleTelemetry(w http.ResponseWriter, _ *http.Request) {
	var sample telemetry.Sample
	if s.poller != nil {
		sample, _ = s.poller.Latest()
	}

	resp := telemetryResponse{Fields: sample.Fields()}
	if lat, lng, ok := telemetry.MapPoint(sample); ok {
		resp.Map = &mapPoint{Lat: lat, Lng: lng}
	}
	if !sample.At.IsZero() {
		resp.At = sample.At.UnixMilli()
	}

	s.writeJSON(w, http.StatusOK, resp)
}

type historyEntry struct {
	At     int64             `json:"at"`
	Fields map[string]string `json:"fields"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		if n < limit {
			limit = n
		}
	}

	if s.store == nil {
		s.writeJSON(w, http.StatusOK, []historyEntry{})
		return
	}

	samples, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Warn("history query failed", "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}

	out := make([]historyEntry, 0, len(samples))
	for _, sm := range samples {
		out = append(out, historyEntry{
			At:     sm.At.UnixMilli(),
			Fields: sm.Fields(),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}
