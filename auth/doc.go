// Package auth exchanges username and password for a bearer token against an AWS Cognito
// user pool whose app client requires a SECRET_HASH.
//
// The Authenticator performs a single AdminInitiateAuth call per authentication attempt and
// never retries. A Session binds one set of credentials to a token store, authenticating
// lazily and dropping the cached token once the server rejects it, so it can be used as an
// oauth2.TokenSource by the `transport` sub-package.
package auth
