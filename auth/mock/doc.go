// Package mock provides an in-memory identity provider that facilitates unit testing of
// the username/password authentication flow.
//
// The mock validates SECRET_HASH and password the way a Cognito user pool does and issues
// HS256 signed access tokens without performing actual network round-trips.
package mock
