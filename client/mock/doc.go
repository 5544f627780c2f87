// Package mock provides an in-process MCP endpoint that facilitates testing the client
// against both plain JSON and Server-Sent-Events response framing.
//
// The server verifies HS256 bearer tokens, enforces initialize-first sequencing when asked
// and dispatches tools/call to registered Go handlers.
package mock
