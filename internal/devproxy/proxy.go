package devproxy

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"github.com/dozor-fleet/gpsdozor-client/internal/logger"
)

// Options tunes a Proxy.
type Options struct {
	// StaticDir is served for paths no route matches; empty means 404.
	StaticDir string
	// Transport overrides the upstream round tripper for every route. An
	// *http.Transport is cloned per insecure route so that secure: false still
	// skips certificate checks; any other RoundTripper is used as is and the
	// route's secure flag has no effect.
	Transport http.RoundTripper
}

// Proxy dispatches requests to the route with the longest matching prefix.
type Proxy struct {
	routes   []*mountedRoute
	fallback http.Handler
	log      logger.Logger
}

type mountedRoute struct {
	Route
	target *url.URL
	proxy  *httputil.ReverseProxy
}

// New validates routes and builds the reverse proxies.
func New(routes []Route, opts Options, log logger.Logger) (*Proxy, error) {
	log = logger.Ensure(log)
	if len(routes) == 0 {
		return nil, fmt.Errorf("no proxy routes configured")
	}

	p := &Proxy{log: log, fallback: http.NotFoundHandler()}
	if dir := strings.TrimSpace(opts.StaticDir); dir != "" {
		p.fallback = http.FileServer(http.Dir(dir))
	}

	for _, r := range routes {
		r = sanitizeRoute(r)
		target, err := validateRoute(r)
		if err != nil {
			return nil, err
		}
		mr := &mountedRoute{Route: r, target: target}
		mr.proxy = p.reverseProxy(mr, opts.Transport)
		p.routes = append(p.routes, mr)
	}

	sort.SliceStable(p.routes, func(i, j int) bool {
		return len(p.routes[i].Prefix) > len(p.routes[j].Prefix)
	})
	return p, nil
}

func (p *Proxy) reverseProxy(mr *mountedRoute, transport http.RoundTripper) *httputil.ReverseProxy {
	if !mr.SecureValue() {
		transport = insecureTransport(transport)
	}

	return &httputil.ReverseProxy{
		Transport: transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			if mr.StripPrefix {
				stripPrefix(pr.Out.URL, mr.Prefix)
			}
			pr.SetURL(mr.target)
			if !mr.ChangeOriginValue() {
				pr.Out.Host = pr.In.Host
			}
			pr.SetXForwarded()
		},
		ModifyResponse: func(resp *http.Response) error {
			p.log.DebugObj("proxy response", "proxy_response", map[string]any{
				"prefix":   mr.Prefix,
				"method":   resp.Request.Method,
				"upstream": resp.Request.URL.String(),
				"status":   resp.StatusCode,
			})
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.log.ErrorObj("proxy upstream failed", "proxy_error", map[string]any{
				"prefix": mr.Prefix,
				"method": r.Method,
				"path":   r.URL.Path,
				"target": mr.Target,
				"error":  err.Error(),
			})
			w.WriteHeader(http.StatusBadGateway)
		},
	}
}

// ServeHTTP implements http.Handler.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if mr := p.match(r.URL.Path); mr != nil {
		mr.proxy.ServeHTTP(w, r)
		return
	}
	p.fallback.ServeHTTP(w, r)
}

// match uses plain prefix comparison, so /api also claims /apix.
func (p *Proxy) match(path string) *mountedRoute {
	for _, mr := range p.routes {
		if strings.HasPrefix(path, mr.Prefix) {
			return mr
		}
	}
	return nil
}

// insecureTransport clones base, or the default transport when base is nil,
// with certificate verification disabled. Other round trippers pass through.
func insecureTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	ht, ok := base.(*http.Transport)
	if !ok {
		return base
	}
	t := ht.Clone()
	if t.TLSClientConfig == nil {
		t.TLSClientConfig = &tls.Config{}
	}
	t.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // opt-in per route
	return t
}

func stripPrefix(u *url.URL, prefix string) {
	u.Path = strings.TrimPrefix(u.Path, prefix)
	if u.RawPath != "" {
		u.RawPath = strings.TrimPrefix(u.RawPath, prefix)
	}
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
}
