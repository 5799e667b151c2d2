package gpsdozor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, New(Config{BaseURL: srv.URL + BasePath})
}

func TestFetchSendsAuthAndContentType(t *testing.T) {
	var gotUser, gotPass, gotCT, gotMethod string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotCT = r.Header.Get("Content-Type")
		gotMethod = r.Method
		w.Write([]byte(`[]`))
	})

	if _, err := client.Groups(context.Background()); err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if gotMethod != http.MethodGet {
		t.Fatalf("expected GET, got %s", gotMethod)
	}
	if gotUser != DefaultUser || gotPass != DefaultPass {
		t.Fatalf("expected demo credentials, got %q/%q", gotUser, gotPass)
	}
	if gotCT != "application/json" {
		t.Fatalf("expected json content type, got %q", gotCT)
	}
}

func TestNewUsesSuppliedCredentials(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(Config{
		BaseURL:     srv.URL + BasePath + "/",
		Credentials: Credentials{User: "fleet", Pass: "s3cret"},
	})
	if _, err := client.Vehicle(context.Background(), "V1"); err != nil {
		t.Fatalf("Vehicle: %v", err)
	}
	// base64("fleet:s3cret")
	if gotAuth != "Basic ZmxlZXQ6czNjcmV0" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}

func TestCredentialsFallBackPerField(t *testing.T) {
	got := Credentials{User: "only-user"}.withDefaults()
	if got.User != "only-user" || got.Pass != DefaultPass {
		t.Fatalf("unexpected credentials %+v", got)
	}
	if DefaultCredentials() != (Credentials{User: DefaultUser, Pass: DefaultPass}) {
		t.Fatalf("unexpected default credentials")
	}
}

func TestNewDefaultsBaseURL(t *testing.T) {
	if got := New(Config{}).BaseURL(); got != DefaultBaseURL {
		t.Fatalf("expected %s, got %s", DefaultBaseURL, got)
	}
}

func TestFetchRequestsDocumentedPath(t *testing.T) {
	var gotURI string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.Write([]byte(`{}`))
	})

	if _, err := client.Vehicle(context.Background(), "V123"); err != nil {
		t.Fatalf("Vehicle: %v", err)
	}
	if gotURI != "/api/v1/vehicle/V123" {
		t.Fatalf("unexpected request uri %q", gotURI)
	}
}

func TestHistoryJoinsCodesInOrder(t *testing.T) {
	var gotURI string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.Write([]byte(`[]`))
	})

	_, err := client.History(context.Background(), []string{"C", "A", "B", "A"}, "2024-01-15T00:00", "2024-01-15T23:59")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	want := "/api/v1/vehicles/history/C,A,B,A?from=2024-01-15T00:00&to=2024-01-15T23:59"
	if gotURI != want {
		t.Fatalf("expected %q, got %q", want, gotURI)
	}
}

func TestFetchNon2xxReturnsRequestError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`<html>not json`))
	})

	payload, err := client.Trips(context.Background(), "V9", "a", "b")
	if payload != nil {
		t.Fatalf("expected nil payload, got %s", payload)
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T: %v", err, err)
	}
	if reqErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", reqErr.StatusCode)
	}
	if reqErr.Path != "/vehicle/V9/trips?from=a&to=b" {
		t.Fatalf("unexpected path %q", reqErr.Path)
	}
	if msg := err.Error(); !strings.Contains(msg, "401") || !strings.Contains(msg, "/vehicle/V9/trips") {
		t.Fatalf("error should name status and path, got %q", msg)
	}
	if code, ok := StatusCode(err); !ok || code != http.StatusUnauthorized {
		t.Fatalf("StatusCode returned %d, %v", code, ok)
	}
}

func TestFetchInvalidJSONReturnsDecodeError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.Groups(context.Background())
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *json.SyntaxError, got %T: %v", err, err)
	}
	if _, ok := StatusCode(err); ok {
		t.Fatalf("decode error must not look like a RequestError")
	}
}

func TestFetchTransportErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL + BasePath
	srv.Close()

	_, err := New(Config{BaseURL: base}).Groups(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		t.Fatalf("transport failure must not be a RequestError: %v", err)
	}
}

func TestFetchReturnsBodyVerbatim(t *testing.T) {
	body := `{"Code":"V1","Name":"Truck","extra":{"nested":[1,2.50,"x"]},"z":null}`
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	})

	payload, err := client.Vehicle(context.Background(), "V1")
	if err != nil {
		t.Fatalf("Vehicle: %v", err)
	}
	if string(payload) != body {
		t.Fatalf("payload changed:\nwant %s\ngot  %s", body, payload)
	}
}

func TestResponseCookiesDoNotLeakIntoLaterCalls(t *testing.T) {
	var vehicleCookie string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/groups":
			http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "from-groups", Path: "/"})
			w.Write([]byte(`[]`))
		case "/api/v1/vehicle/V1":
			vehicleCookie = r.Header.Get("Cookie")
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	})

	if _, err := client.Groups(context.Background()); err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if _, err := client.Vehicle(context.Background(), "V1"); err != nil {
		t.Fatalf("Vehicle: %v", err)
	}
	if vehicleCookie != "" {
		t.Fatalf("cookie from groups response was replayed: %q", vehicleCookie)
	}
}

func TestConcurrentAccessorsAreIndependent(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/groups":
			w.Write([]byte(`["groups"]`))
		case "/api/v1/vehicle/V1/getEngineRelayState":
			w.Write([]byte(`["relay"]`))
		default:
			http.NotFound(w, r)
		}
	})

	const rounds = 20
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got, err := client.Groups(context.Background())
			if err != nil || string(got) != `["groups"]` {
				t.Errorf("Groups got %s, %v", got, err)
			}
		}()
		go func() {
			defer wg.Done()
			got, err := client.EngineRelayState(context.Background(), "V1")
			if err != nil || string(got) != `["relay"]` {
				t.Errorf("EngineRelayState got %s, %v", got, err)
			}
		}()
	}
	wg.Wait()
}
