// internal/publish/document.go
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultPublishTimeout bounds one document write. The reference
// behavior had no bound; an unbounded http.Client leaks goroutines, so
// the write gets a timeout while staying fire-and-forget.
const DefaultPublishTimeout = 5 * time.Second

// DocumentSink writes frames to the remote realtime document over its
// REST surface. The embedded controller polls the same document.
type DocumentSink struct {
	endpoint string
	auth     string
	client   *http.Client
}

// NewDocumentSink creates the sink. The endpoint is the full document
// URL; auth, when set, is appended as a query parameter.
func NewDocumentSink(endpoint, auth string, timeout time.Duration) (*DocumentSink, error) {
	if endpoint == "" {
		return nil, errors.New("document sink: endpoint required")
	}
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &DocumentSink{
		endpoint: endpoint,
		auth:     auth,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (s *DocumentSink) Name() string { return "document" }

// Publish replaces the document with the encoded frame.
func (s *DocumentSink) Publish(ctx context.Context, f Frame) error {
	body, err := json.Marshal(Encode(f))
	if err != nil {
		return fmt.Errorf("document sink: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.requestURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("document sink: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("document sink: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("document sink: unexpected status %s", resp.Status)
	}
	return nil
}

func (s *DocumentSink) requestURL() string {
	if s.auth == "" {
		return s.endpoint
	}
	sep := "?"
	if strings.Contains(s.endpoint, "?") {
		sep = "&"
	}
	return s.endpoint + sep + "auth=" + url.QueryEscape(s.auth)
}
