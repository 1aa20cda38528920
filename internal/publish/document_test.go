// internal/publish/document_test.go
package publish

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nizzatkr/pero/internal/control"
)

func TestDocumentSink_WritesFlatRecord(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.URL.Query().Get("auth")
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("body not a flat string record: %v", err)
		}
	}))
	defer srv.Close()

	s, err := NewDocumentSink(srv.URL+"/pero/control.json", "secret", time.Second)
	if err != nil {
		t.Fatalf("NewDocumentSink() err=%v", err)
	}

	frame := Frame{
		Command:   control.Lefty,
		SprayLeft: true,
		At:        time.UnixMilli(42),
	}
	if err := s.Publish(context.Background(), frame); err != nil {
		t.Fatalf("Publish err=%v", err)
	}

	if gotMethod != http.MethodPut {
		t.Fatalf("method=%s, want PUT", gotMethod)
	}
	if gotPath != "/pero/control.json" {
		t.Fatalf("path=%s", gotPath)
	}
	if gotAuth != "secret" {
		t.Fatalf("auth=%q", gotAuth)
	}
	if gotBody[KeyLeft] != "1" || gotBody[KeyRight] != "0" {
		t.Fatalf("direction flags wrong: %v", gotBody)
	}
	if gotBody[KeySprayLeft] != "1" {
		t.Fatalf("spray flag wrong: %v", gotBody)
	}
	if gotBody[KeyTimestamp] != "42" {
		t.Fatalf("timestamp wrong: %v", gotBody)
	}
}

func TestDocumentSink_NoAuthParamWhenUnset(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
	}))
	defer srv.Close()

	s, err := NewDocumentSink(srv.URL, "", time.Second)
	if err != nil {
		t.Fatalf("NewDocumentSink() err=%v", err)
	}
	if err := s.Publish(context.Background(), Frame{}); err != nil {
		t.Fatalf("Publish err=%v", err)
	}
	if gotQuery != "" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestDocumentSink_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	s, err := NewDocumentSink(srv.URL, "", time.Second)
	if err != nil {
		t.Fatalf("NewDocumentSink() err=%v", err)
	}
	if err := s.Publish(context.Background(), Frame{}); err == nil {
		t.Fatalf("expected error on 403")
	}
}

func TestNewDocumentSink_Validation(t *testing.T) {
	if _, err := NewDocumentSink("", "", 0); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}
