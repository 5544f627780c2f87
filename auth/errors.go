package auth

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is wrapped by AuthError when a required credential field is empty
var ErrMissingCredential = errors.New("missing credential")

const (
	codeMissingCredential = "MissingCredential"
	codeChallenge         = "ChallengeRequired"
	codeNoToken           = "MissingAccessToken"
)

// AuthError represents authentication failure, it is fatal for the session
type AuthError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("authentication failed: %v", e.Message)
	}
	return fmt.Sprintf("authentication failed: %v: %v", e.Code, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
