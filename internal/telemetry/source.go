// internal/telemetry/source.go
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds one telemetry fetch.
const DefaultFetchTimeout = 3 * time.Second

// Source fetches the latest flat telemetry record.
type Source interface {
	Fetch(ctx context.Context) (map[string]string, error)
}

// DocumentSource reads the telemetry document over its REST surface.
type DocumentSource struct {
	endpoint string
	auth     string
	client   *http.Client
}

// NewDocumentSource creates a source for the given document URL.
func NewDocumentSource(endpoint, auth string, timeout time.Duration) (*DocumentSource, error) {
	if endpoint == "" {
		return nil, errors.New("telemetry source: endpoint required")
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &DocumentSource{
		endpoint: endpoint,
		auth:     auth,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Fetch reads and flattens the document.
func (s *DocumentSource) Fetch(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("telemetry source: request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telemetry source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telemetry source: unexpected status %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telemetry source: read: %w", err)
	}

	rec, err := RecordFromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("telemetry source: decode: %w", err)
	}
	return rec, nil
}

func (s *DocumentSource) requestURL() string {
	if s.auth == "" {
		return s.endpoint
	}
	sep := "?"
	if strings.Contains(s.endpoint, "?") {
		sep = "&"
	}
	return s.endpoint + sep + "auth=" + url.QueryEscape(s.auth)
}
