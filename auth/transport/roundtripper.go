package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
)

// TokenSource represents a session token source that can drop a rejected token
type TokenSource interface {
	TokenContext(ctx context.Context) (*oauth2.Token, error)
	Invalidate()
}

type RoundTripper struct {
	source    TokenSource
	transport http.RoundTripper
	logger    *slog.Logger
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := r.source.TokenContext(req.Context())
	if err != nil {
		return nil, err
	}
	authorized := req.Clone(req.Context())
	token.SetAuthHeader(authorized)
	resp, err := r.transport.RoundTrip(authorized)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		r.source.Invalidate()
		r.logger.Warn("bearer token rejected", "url", req.URL.Redacted(), "status", resp.StatusCode)
	}
	return resp, nil
}

// Client returns http client using the round tripper
func (r *RoundTripper) Client() *http.Client {
	return &http.Client{Transport: r}
}

func New(source TokenSource, options ...Option) (*RoundTripper, error) {
	if source == nil {
		return nil, fmt.Errorf("token source was nil")
	}
	ret := &RoundTripper{
		source:    source,
		transport: http.DefaultTransport,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}
