package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
)

func TestRestyClientGetPassesHeadersAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Errorf("missing header, got %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	resp, err := NewRestyClient(2*time.Second).Get(context.Background(), srv.URL, map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if string(resp.Body()) != "short and stout" {
		t.Fatalf("unexpected body %q", resp.Body())
	}
}

func TestRestyClientUsesCustomTransport(t *testing.T) {
	mock := httpmock.NewMockTransport()
	mock.RegisterResponder(http.MethodGet, "http://mocked.test/ping", httpmock.NewStringResponder(http.StatusOK, "pong"))

	resp, err := NewRestyClient(0, WithTransport(mock)).Get(context.Background(), "http://mocked.test/ping", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(resp.Body()) != "pong" {
		t.Fatalf("unexpected body %q", resp.Body())
	}
	if mock.GetTotalCallCount() != 1 {
		t.Fatalf("expected one call through the mock, got %d", mock.GetTotalCallCount())
	}
}

func TestRestyClientDoesNotReplayCookies(t *testing.T) {
	var cookies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies = append(cookies, r.Header.Get("Cookie"))
		http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "first", Path: "/"})
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewRestyClient(time.Second)
	for i := 0; i < 2; i++ {
		if _, err := client.Get(context.Background(), srv.URL+"/call", nil); err != nil {
			t.Fatalf("Get #%d: %v", i, err)
		}
	}
	for i, c := range cookies {
		if c != "" {
			t.Fatalf("request #%d carried cookie %q", i, c)
		}
	}
}

func TestRestyClientReturnsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := NewRestyClient(time.Second).Get(context.Background(), url, nil); err == nil {
		t.Fatalf("expected error for closed server")
	}
}
