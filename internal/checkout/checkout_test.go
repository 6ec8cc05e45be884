package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResolveOrigin(t *testing.T) {
	cases := []struct {
		name       string
		configured string
		header     string
		want       string
	}{
		{name: "configured wins", configured: "https://app.example.com", header: "https://evil.example.com", want: "https://app.example.com"},
		{name: "header fallback", configured: "", header: "https://app.example.com", want: "https://app.example.com"},
		{name: "localhost default", configured: "", header: "", want: "http://localhost:3000"},
		{name: "trailing slash trimmed", configured: "https://app.example.com/", header: "", want: "https://app.example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveOrigin(tc.configured, tc.header)
			if got != tc.want {
				t.Fatalf("ResolveOrigin(%q, %q) = %q, want %q", tc.configured, tc.header, got, tc.want)
			}
		})
	}
}

func TestCreateSessionRequiresPriceID(t *testing.T) {
	client := NewClient(nil, "https://pay.example.com/sessions", "sk_test")
	if _, errCreate := client.CreateSession(context.Background(), nil, "  ", "", "http://localhost:3000"); errCreate == nil {
		t.Fatal("expected error for empty price id")
	}
}

func TestCreateSessionUnconfigured(t *testing.T) {
	client := NewClient(nil, "", "")
	if _, errCreate := client.CreateSession(context.Background(), nil, "price_123", "", "http://localhost:3000"); errCreate == nil {
		t.Fatal("expected error when provider is unconfigured")
	}
}

func TestCreateSessionReturnsProviderURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		var req sessionRequest
		if errDecode := json.NewDecoder(r.Body).Decode(&req); errDecode != nil {
			t.Errorf("decode request: %v", errDecode)
		}
		if req.PriceID != "price_123" {
			t.Errorf("price_id = %q", req.PriceID)
		}
		if !strings.HasPrefix(req.SuccessURL, "https://app.example.com/") {
			t.Errorf("success_url = %q", req.SuccessURL)
		}
		_ = json.NewEncoder(w).Encode(sessionResponse{URL: "https://pay.example.com/s/abc"})
	}))
	defer server.Close()

	client := NewClient(nil, server.URL, "sk_test")
	session, errCreate := client.CreateSession(context.Background(), nil, "price_123", "", "https://app.example.com")
	if errCreate != nil {
		t.Fatalf("create session: %v", errCreate)
	}
	if session.URL != "https://pay.example.com/s/abc" {
		t.Fatalf("url = %q", session.URL)
	}
}

func TestCreateSessionPlanHintFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(sessionResponse{URL: "https://pay.example.com/s/abc"})
	}))
	defer server.Close()

	// No database, so the price-id lookup misses and the caller's hint is
	// the recorded tier.
	client := NewClient(nil, server.URL, "sk_test")
	session, errCreate := client.CreateSession(context.Background(), nil, "price_unknown", "pro", "https://app.example.com")
	if errCreate != nil {
		t.Fatalf("create session: %v", errCreate)
	}
	if session.PlanTier != "pro" {
		t.Fatalf("plan tier = %q, want pro", session.PlanTier)
	}
}

func TestCreateSessionSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sessionResponse{Error: "unknown price"})
	}))
	defer server.Close()

	client := NewClient(nil, server.URL, "sk_test")
	_, errCreate := client.CreateSession(context.Background(), nil, "price_bogus", "", "https://app.example.com")
	if errCreate == nil {
		t.Fatal("expected provider error")
	}
	if !strings.Contains(errCreate.Error(), "unknown price") {
		t.Fatalf("error should carry provider message, got %v", errCreate)
	}
}
