package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/die-net/lrucache"
	"github.com/gregjones/httpcache"
)

const (
	userAgent      = "proc-loader/1.0"
	defaultTimeout = 10 * time.Second
	defaultMaxSize = 20 * 1024 * 1024
)

// HTTPError describes a failed fetch from an HTTP origin.
type HTTPError struct {
	Where string
	URL   string
	Err   error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Where, e.URL, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// HTTP reads resources relative to an origin URL.
type HTTP struct {
	base    *url.URL
	client  *http.Client
	maxSize int64
}

// NewHTTP creates an HTTP source. A positive cacheBytes enables an in-memory
// HTTP cache honoring the origin's caching headers.
func NewHTTP(rawURL string, timeout time.Duration, maxSize, cacheBytes int64) (*HTTP, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source url: %w", err)
	} else if !base.IsAbs() {
		return nil, fmt.Errorf("source url must have a scheme: %v", base)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}
	if cacheBytes > 0 {
		transport = &httpcache.Transport{
			Cache:               lrucache.New(cacheBytes, 0),
			Transport:           transport,
			MarkCachedResponses: true,
		}
	}

	return &HTTP{
		base:    base,
		client:  &http.Client{Transport: transport, Timeout: timeout},
		maxSize: maxSize,
	}, nil
}

// Resolve returns the absolute URL for a resource name.
func (h *HTTP) Resolve(name string) string {
	return h.base.ResolveReference(&url.URL{Path: cleanName(name)}).String()
}

// Fetch satisfies [Source].
func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	target := h.Resolve(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &HTTPError{Where: "request", URL: target, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &HTTPError{Where: "do", URL: target, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, target)
	case resp.StatusCode != http.StatusOK:
		return nil, &HTTPError{Where: "status", URL: target, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	case resp.ContentLength > h.maxSize:
		return nil, &HTTPError{Where: "size", URL: target, Err: fmt.Errorf("content length %d exceeds %d", resp.ContentLength, h.maxSize)}
	}

	limiter := &io.LimitedReader{R: resp.Body, N: h.maxSize + 1}
	data, err := io.ReadAll(limiter)
	if err != nil {
		return nil, &HTTPError{Where: "read", URL: target, Err: err}
	}
	if int64(len(data)) > h.maxSize {
		return nil, &HTTPError{Where: "size", URL: target, Err: fmt.Errorf("body exceeds %d bytes", h.maxSize)}
	}
	return data, nil
}
