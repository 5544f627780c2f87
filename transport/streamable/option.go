package streamable

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Option represents transport option
type Option func(t *Transport)

// WithBearerToken sets Authorization header from the token
func WithBearerToken(token *oauth2.Token) Option {
	return func(t *Transport) {
		if token == nil || token.AccessToken == "" {
			return
		}
		t.header.Set(headerAuthorization, token.Type()+" "+token.AccessToken)
	}
}

// WithHTTPClient sets http client
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithTimeout sets per call timeout
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		if timeout > 0 {
			t.timeout = timeout
		}
	}
}

// WithHealthTimeout sets health check timeout
func WithHealthTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		if timeout > 0 {
			t.healthTimeout = timeout
		}
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithHeader sets an additional request header
func WithHeader(key, value string) Option {
	return func(t *Transport) {
		t.header.Set(key, value)
	}
}
