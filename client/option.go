package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpcognito/transport/streamable"
)

const (
	DefaultName    = "mcpcognito"
	DefaultVersion = "1.0.0"
)

// Option represents option
type Option func(c *Client)

// WithCapabilities set capabilites
func WithCapabilities(capabilities schema.ClientCapabilities) Option {
	return func(c *Client) {
		c.capabilities = capabilities
	}
}

// WithClientInfo sets client implementation sent with initialize
func WithClientInfo(name, version string) Option {
	return func(c *Client) {
		c.info = *schema.NewImplementation(name, version)
	}
}

func WithProtocolVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.protocolVersion = version
		}
	}
}

// WithStrictSequence makes tools operations fail with ErrNotInitialized before initialize
func WithStrictSequence() Option {
	return func(c *Client) {
		c.strict = true
	}
}

// WithToolValidation makes CallTool reject tools absent from tools/list
func WithToolValidation() Option {
	return func(c *Client) {
		c.validateTools = true
	}
}

// WithInitializedNotification sends notifications/initialized after initialize
func WithInitializedNotification() Option {
	return func(c *Client) {
		c.notifyInitialized = true
	}
}

// WithIDGenerator sets request id generator
func WithIDGenerator(generator IDGenerator) Option {
	return func(c *Client) {
		if generator != nil {
			c.ids = generator
		}
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets http client used by the streamable transport
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.transportOptions = append(c.transportOptions, streamable.WithHTTPClient(httpClient))
	}
}

// WithTimeout sets per call timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.transportOptions = append(c.transportOptions, streamable.WithTimeout(timeout))
	}
}

// WithHealthTimeout sets health check timeout
func WithHealthTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.transportOptions = append(c.transportOptions, streamable.WithHealthTimeout(timeout))
	}
}
