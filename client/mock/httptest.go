package mock

import (
	"net/http/httptest"
)

// HTTPTestServer represents a running mock MCP server
type HTTPTestServer struct {
	*httptest.Server
	MCP      *Server
	Endpoint string
}

// NewHTTPTestServer starts mock MCP server on a local port
func NewHTTPTestServer(options ...Option) *HTTPTestServer {
	server := New(options...)
	httpServer := httptest.NewServer(server)
	return &HTTPTestServer{Server: httpServer, MCP: server, Endpoint: httpServer.URL + server.path}
}
