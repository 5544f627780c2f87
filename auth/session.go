package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/mcpcognito/auth/store"
	"golang.org/x/oauth2"
)

// Session represents an oauth2.TokenSource bound to one set of credentials
type Session struct {
	authenticator *Authenticator
	credentials   *Credentials
	store         store.Store
	key           store.TokenKey
	mux           sync.Mutex
}

// Token implements oauth2.TokenSource
func (s *Session) Token() (*oauth2.Token, error) {
	return s.TokenContext(context.Background())
}

// TokenContext returns the cached session token or authenticates
func (s *Session) TokenContext(ctx context.Context) (*oauth2.Token, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if token, ok := s.store.LookupToken(s.key); ok && token.Valid() {
		return token, nil
	}
	token, err := s.authenticator.Authenticate(ctx, s.credentials)
	if err != nil {
		return nil, err
	}
	if err = s.store.AddToken(s.key, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Invalidate drops the cached token, the next call authenticates again
func (s *Session) Invalidate() {
	s.mux.Lock()
	defer s.mux.Unlock()
	_ = s.store.RemoveToken(s.key)
	s.authenticator.logger.Debug("session token invalidated", "userPoolId", s.key.UserPoolID, "clientId", s.key.ClientID, "username", s.key.Username)
}

// Session creates a session for credentials, nil store uses an in memory store
func (a *Authenticator) Session(credentials *Credentials, aStore store.Store) (*Session, error) {
	if credentials == nil {
		return nil, &AuthError{Code: codeMissingCredential, Message: "credentials were nil", Err: ErrMissingCredential}
	}
	if err := credentials.Validate(); err != nil {
		return nil, err
	}
	if aStore == nil {
		aStore = store.NewMemoryStore()
	}
	return &Session{
		authenticator: a,
		credentials:   credentials,
		store:         aStore,
		key:           store.TokenKey{UserPoolID: credentials.UserPoolID, ClientID: credentials.ClientID, Username: credentials.Username},
	}, nil
}
