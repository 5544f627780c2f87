package mock

import (
	"time"

	"github.com/viant/mcpcognito/protocol"
)

// Option represents server option
type Option func(s *Server)

// WithImplementation sets server name and version reported by initialize
func WithImplementation(name, version string) Option {
	return func(s *Server) {
		s.name = name
		s.version = version
	}
}

// WithFraming sets response framing
func WithFraming(framing protocol.Framing) Option {
	return func(s *Server) {
		s.framing = framing
	}
}

// WithContentType overrides response Content-Type regardless of the actual framing
func WithContentType(contentType string) Option {
	return func(s *Server) {
		s.contentType = contentType
	}
}

// WithSigningKey requires HS256 bearer tokens signed with key
func WithSigningKey(key []byte) Option {
	return func(s *Server) {
		s.signingKey = key
	}
}

// WithDelay delays every JSON-RPC response
func WithDelay(delay time.Duration) Option {
	return func(s *Server) {
		s.delay = delay
	}
}

// WithStrictSequence rejects tools operations before initialize
func WithStrictSequence() Option {
	return func(s *Server) {
		s.strict = true
	}
}

// WithPath sets MCP endpoint path, /mcp by default
func WithPath(path string) Option {
	return func(s *Server) {
		s.path = path
	}
}

// WithTool registers a tool
func WithTool(tool *Tool) Option {
	return func(s *Server) {
		s.tools = append(s.tools, tool)
	}
}
