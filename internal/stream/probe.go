// internal/stream/probe.go
package stream

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds a single probe round trip.
const DefaultProbeTimeout = 3 * time.Second

// Prober issues lightweight existence checks against the camera stream.
// It never returns an error: every transport failure is absorbed into
// the ProbeResult.
type Prober struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewProber creates a prober with immutable config.
// A non-positive timeout falls back to DefaultProbeTimeout.
func NewProber(baseURL string, timeout time.Duration) (*Prober, error) {
	if baseURL == "" {
		return nil, errors.New("prober: base url required")
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Prober{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}, nil
}

// ProbeOnce performs exactly one probe cycle.
// The URL carries a fresh cache-busting token so an intermediate cache
// can never answer for the stream.
func (p *Prober) ProbeOnce(ctx context.Context) ProbeResult {
	at := p.now()
	res := ProbeResult{At: at}

	url := p.bustedURL(at)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		res.Err = err
		return res
	}

	resp, err := p.client.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	resp.Body.Close()

	// A completed exchange is enough: this is a connectivity check, not
	// a content fetch.
	res.URL = url
	return res
}

func (p *Prober) bustedURL(at time.Time) string {
	sep := "?"
	if strings.Contains(p.baseURL, "?") {
		sep = "&"
	}
	return p.baseURL + sep + "t=" + strconv.FormatInt(at.UnixMilli(), 10)
}
