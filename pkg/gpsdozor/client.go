package gpsdozor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dozor-fleet/gpsdozor-client/pkg/httpclient"
)

const (
	// BasePath is the API prefix every request path is appended to.
	BasePath = "/api/v1"
	// DefaultHost is the production fleet-tracking host.
	DefaultHost = "https://a1.gpsguard.eu"
	// DefaultBaseURL is DefaultHost joined with BasePath.
	DefaultBaseURL = DefaultHost + BasePath

	// Demo account published by the service; not suitable for production.
	DefaultUser = "api_gpsdozor"
	DefaultPass = "yakmwlARdn"
)

// Payload is the opaque JSON value returned by the API, byte for byte.
type Payload = json.RawMessage

// Credentials identifies the service account used for Basic authentication.
type Credentials struct {
	User string
	Pass string
}

// DefaultCredentials returns the demo account.
func DefaultCredentials() Credentials {
	return Credentials{User: DefaultUser, Pass: DefaultPass}
}

func (c Credentials) withDefaults() Credentials {
	if c.User == "" {
		c.User = DefaultUser
	}
	if c.Pass == "" {
		c.Pass = DefaultPass
	}
	return c
}

// Config controls how a Client reaches the service.
type Config struct {
	// BaseURL is the scheme, host and API prefix, e.g. http://localhost:5173/api/v1.
	BaseURL     string
	Credentials Credentials
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport used for requests.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client issues authenticated requests against the fleet-tracking API.
// It is safe for concurrent use; the only shared state is the auth header,
// computed once in New.
type Client struct {
	baseURL    string
	authHeader string
	http       httpclient.Client
}

// New builds a Client. Missing credential fields fall back to the demo account
// and an empty BaseURL falls back to DefaultBaseURL.
func New(cfg Config, opts ...Option) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	creds := cfg.Credentials.withDefaults()
	c := &Client{
		baseURL:    baseURL,
		authHeader: basicAuth(creds),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(cfg.Timeout)
	}
	return c
}

// BaseURL returns the URL prefix requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

func basicAuth(creds Credentials) string {
	token := base64.StdEncoding.EncodeToString([]byte(creds.User + ":" + creds.Pass))
	return "Basic " + token
}

// Fetch performs an authenticated GET of BaseURL+path, where path already
// carries any query string. A non-2xx status yields *RequestError without
// reading the body as JSON.
func (c *Client) Fetch(ctx context.Context, path string) (Payload, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	headers := map[string]string{
		"Authorization": c.authHeader,
		"Content-Type":  "application/json",
	}

	resp, err := c.http.Get(ctx, c.baseURL+path, headers)
	if err != nil {
		return nil, err
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, &RequestError{StatusCode: status, Path: path}
	}

	var payload Payload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
