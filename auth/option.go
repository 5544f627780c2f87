package auth

import (
	"log/slog"
)

// Option represents authenticator option
type Option func(a *Authenticator)

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Authenticator) {
		if logger != nil {
			a.logger = logger
		}
	}
}
