package mobula

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_TokenDetails(t *testing.T) {
	const payload = `{"data":{"name":"Wrapped SOL","symbol":"SOL"}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("blockchain"); got != "solana" {
			t.Errorf("expected blockchain=solana, got %q", got)
		}
		if got := r.URL.Query().Get("address"); got != "addr1" {
			t.Errorf("expected address=addr1, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("expected Authorization test-key, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	data, err := client.TokenDetails(context.Background(), "addr1")
	if err != nil {
		t.Fatalf("TokenDetails: %v", err)
	}
	if string(data) != payload {
		t.Errorf("expected payload stored verbatim, got %s", data)
	}
}

func TestClient_TokenDetails_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"token not found"}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.TokenDetails(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", httpErr.StatusCode)
	}
	if httpErr.Body != `{"message":"token not found"}` {
		t.Errorf("expected body carried in error, got %q", httpErr.Body)
	}
}

func TestClient_TokenDetails_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient("test-key", WithBaseURL(server.URL), WithTimeout(time.Second))

	_, err := client.TokenDetails(context.Background(), "addr1")
	if err == nil {
		t.Fatal("expected transport error")
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		t.Fatalf("transport failure must not be an *HTTPError: %v", err)
	}
}

func TestClient_TokenDetails_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	if _, err := client.TokenDetails(context.Background(), "addr1"); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}
