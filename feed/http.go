package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultURL is the canonical upstream mirror of the USB ID Repository.
const DefaultURL = "https://usb-ids.gowdy.us/usb.ids"

// defaultMaxBytes caps a fetched snapshot. The upstream file is ~700 KB; the
// cap guards against a misbehaving mirror, not a growing database.
const defaultMaxBytes = 16 << 20

// HTTP fetches a snapshot over plain HTTP(S).
//
// Retries are paced by a rate limiter so a flapping mirror is not hammered.
type HTTP struct {
	url      string
	client   *http.Client
	limiter  *rate.Limiter
	attempts int
	maxBytes int64
}

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithClient replaces the HTTP client, e.g. to set a proxy or TLS config.
func WithClient(c *http.Client) HTTPOption {
	return func(h *HTTP) { h.client = c }
}

// WithAttempts sets the number of tries per Fetch. Minimum 1.
func WithAttempts(n int) HTTPOption {
	return func(h *HTTP) {
		if n >= 1 {
			h.attempts = n
		}
	}
}

// WithLimiter replaces the retry pacer.
func WithLimiter(l *rate.Limiter) HTTPOption {
	return func(h *HTTP) { h.limiter = l }
}

// NewHTTP creates an HTTP source for the given URL. An empty URL means
// DefaultURL.
func NewHTTP(url string, opts ...HTTPOption) *HTTP {
	if url == "" {
		url = DefaultURL
	}
	h := &HTTP{
		url:      url,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(2*time.Second), 1),
		attempts: 3,
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements Source.
func (h *HTTP) Name() string { return h.url }

// Fetch implements Source.
func (h *HTTP) Fetch(ctx context.Context) ([]byte, error) {
	var errs []error
	for range h.attempts {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		data, err := h.get(ctx)
		if err == nil {
			return data, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errs...)
}

func (h *HTTP) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: HTTP 404", ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.maxBytes {
		return nil, fmt.Errorf("snapshot exceeds %d bytes", h.maxBytes)
	}
	return data, nil
}
