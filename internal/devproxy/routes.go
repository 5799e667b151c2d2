package devproxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// APIPrefix forwards fleet-tracking calls unchanged.
	APIPrefix = "/api"
	// WeatherPrefix forwards weather widget calls with the prefix removed.
	WeatherPrefix = "/owm"

	DefaultAPITarget     = "https://a1.gpsguard.eu"
	DefaultWeatherTarget = "https://api.openweathermap.org"
)

// routesFile represents the structure of the routes configuration file.
type routesFile struct {
	Routes []Route `json:"routes" yaml:"routes"`
}

// Route forwards every request whose path starts with Prefix to Target.
type Route struct {
	Prefix      string `json:"prefix" yaml:"prefix"`
	Target      string `json:"target" yaml:"target"`
	StripPrefix bool   `json:"strip_prefix" yaml:"strip_prefix"`
	// ChangeOrigin rewrites the Host header to the target host. Defaults to true.
	ChangeOrigin *bool `json:"change_origin" yaml:"change_origin"`
	// Secure verifies the upstream TLS certificate. Defaults to true.
	Secure *bool `json:"secure" yaml:"secure"`
}

// DefaultRoutes mirrors the development setup: the API host under /api and
// the weather API under /owm.
func DefaultRoutes() []Route {
	return []Route{
		{Prefix: APIPrefix, Target: DefaultAPITarget},
		{Prefix: WeatherPrefix, Target: DefaultWeatherTarget, StripPrefix: true},
	}
}

// LoadRoutes loads routes from a YAML/JSON file. An empty path yields DefaultRoutes.
func LoadRoutes(path string) ([]Route, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultRoutes(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open routes file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}

	parsed, err := parseRoutes(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Routes) == 0 {
		return nil, errors.New("routes file contains no routes entries")
	}

	seen := make(map[string]struct{}, len(parsed.Routes))
	for i := range parsed.Routes {
		r := sanitizeRoute(parsed.Routes[i])
		if _, err := validateRoute(r); err != nil {
			return nil, fmt.Errorf("routes[%d]: %w", i, err)
		}
		if _, dup := seen[r.Prefix]; dup {
			return nil, fmt.Errorf("duplicate route prefix %q", r.Prefix)
		}
		seen[r.Prefix] = struct{}{}
		parsed.Routes[i] = r
	}
	return parsed.Routes, nil
}

func parseRoutes(data []byte, ext string) (routesFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var rf routesFile
		if err := d.fn(data, &rf); err == nil {
			return rf, nil
		}
	}

	return routesFile{}, errors.New("routes file format not recognized (expected YAML or JSON)")
}

func sanitizeRoute(r Route) Route {
	r.Prefix = strings.TrimSpace(r.Prefix)
	r.Target = strings.TrimRight(strings.TrimSpace(r.Target), "/")
	return r
}

// validateRoute checks r and returns its parsed target.
func validateRoute(r Route) (*url.URL, error) {
	if r.Prefix == "" || !strings.HasPrefix(r.Prefix, "/") {
		return nil, fmt.Errorf("prefix must start with / (got %q)", r.Prefix)
	}
	if r.Target == "" {
		return nil, fmt.Errorf("target is required for route %q", r.Prefix)
	}
	u, err := url.Parse(r.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid target for route %q: %w", r.Prefix, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("target for route %q must be http or https", r.Prefix)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("target for route %q has no host", r.Prefix)
	}
	return u, nil
}

// ChangeOriginValue returns the change_origin flag defaulting to true.
func (r Route) ChangeOriginValue() bool {
	if r.ChangeOrigin == nil {
		return true
	}
	return *r.ChangeOrigin
}

// SecureValue returns the secure flag defaulting to true.
func (r Route) SecureValue() bool {
	if r.Secure == nil {
		return true
	}
	return *r.Secure
}
