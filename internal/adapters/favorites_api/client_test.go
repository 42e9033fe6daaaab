package favorites_api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAddAndRemove_UseExpectedRoutes(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	if err := client.Add(ctx, "p-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.Remove(ctx, "p-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0].method != http.MethodPost || calls[0].path != "/favorites/p-1" {
		t.Fatalf("unexpected add call: %+v", calls[0])
	}
	if calls[1].method != http.MethodDelete || calls[1].path != "/favorites/p-1" {
		t.Fatalf("unexpected remove call: %+v", calls[1])
	}
}

func TestList_DecodesIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":["p-1","p-2"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ids, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "p-1" || ids[1] != "p-2" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestAdd_ErrorOnNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conflict", http.StatusConflict)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.Add(context.Background(), "p-1"); err == nil {
		t.Fatalf("expected error for 409 response")
	}
}
