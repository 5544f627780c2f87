// Package protocol contains the wire level pieces shared by the MCP client:
// request construction, response decoding and the client error taxonomy.
//
// A response body is decoded into a Message regardless of its framing. Bodies that
// start with an SSE field marker (`data:` or `event:`) are treated as Server-Sent-Events
// and only the first `data: ` line is used; any other body is parsed as a single JSON
// document. Decoding never panics or returns a Go error: undecodable bodies become a
// Message whose `error` member is a plain string, e.g.
//
//	{"error": "No data found in SSE response"}
//
// so that callers branch on Message.Kind the same way for every failure layer.
package protocol
