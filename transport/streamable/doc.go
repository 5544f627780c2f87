// Package streamable implements a request/response MCP client transport over HTTP POST.
//
// Each call posts a single JSON-RPC message and reads the whole response body. The body is
// decoded as plain JSON or as Server-Sent-Events depending on its leading bytes, the
// Content-Type response header is ignored.
package streamable
