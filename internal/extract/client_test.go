package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	c := NewClient(url, 2*time.Second)
	c.cfg = RetryConfig{MaxRetries: 1, InitialBackoff: time.Millisecond}
	return c
}

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/extract" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "estratto conto marzo" {
			t.Errorf("text = %q", req.Text)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]string{
				{"description": "Manutenzione ascensore", "amount": "450,00", "date": "2024-03-15", "category": "Manutenzione", "status": "paid"},
				{"description": "Pulizia scale", "amount": "80"},
			},
		})
	}))
	defer srv.Close()

	candidates, err := newTestClient(srv.URL).Extract(context.Background(), Request{Text: "estratto conto marzo"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("candidates = %d", len(candidates))
	}
	if candidates[0].Description != "Manutenzione ascensore" || candidates[0].Amount != "450,00" {
		t.Errorf("candidate = %+v", candidates[0])
	}
	// Partial candidates come through untouched; validation is not this
	// client's job.
	if candidates[1].Date != "" || candidates[1].Status != "" {
		t.Errorf("candidate = %+v", candidates[1])
	}
}

func TestExtractServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Extract(context.Background(), Request{Text: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsServiceError(err) {
		t.Fatalf("err = %T, want ServiceError", err)
	}
}

func TestExtractRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"candidates": []map[string]string{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Extract(context.Background(), Request{Text: "x"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want retry after first failure", calls.Load())
	}
}

func TestExtractContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestClient(srv.URL).Extract(ctx, Request{Text: "x"}); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
