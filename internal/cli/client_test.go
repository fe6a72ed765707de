package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"version_conflict","message":"session changed"}}`))
	}))
	defer srv.Close()

	c := &apiClient{baseURL: srv.URL, http: srv.Client()}
	err := c.post("/api/v1/live-sessions/ist-2025-01-07/undo", nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "version_conflict: session changed"
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestClientSendsGuestHeaderWithoutToken(t *testing.T) {
	var gotGuest, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotGuest = r.Header.Get("X-Guest-Id")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := &apiClient{baseURL: srv.URL, http: srv.Client()}
	var out map[string]any
	if err := c.get("/api/v1/health", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotGuest != "planctl" {
		t.Fatalf("X-Guest-Id = %q, want planctl", gotGuest)
	}
	if gotAuth != "" {
		t.Fatalf("unexpected Authorization header %q", gotAuth)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := &apiClient{baseURL: srv.URL, token: "tok123", http: srv.Client()}
	if err := c.get("/", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}
