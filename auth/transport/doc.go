// Package transport implements an http.RoundTripper that attaches the session bearer
// token to every outgoing request.
//
// When the server rejects the token with `401 Unauthorized` or `403 Forbidden` the
// session token is invalidated and the response is returned unchanged, the request is
// not replayed. The following call authenticates again.
package transport
