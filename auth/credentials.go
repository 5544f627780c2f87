package auth

import (
	"fmt"
	"log/slog"
	"strings"
)

const redacted = "***"

// Credentials represents user pool app client and user credentials
type Credentials struct {
	UserPoolID   string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Validate checks all fields are set
func (c *Credentials) Validate() error {
	var missing []string
	if c.UserPoolID == "" {
		missing = append(missing, "user pool id")
	}
	if c.ClientID == "" {
		missing = append(missing, "client id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client secret")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) == 0 {
		return nil
	}
	return &AuthError{Code: codeMissingCredential, Message: "missing " + strings.Join(missing, ", "), Err: ErrMissingCredential}
}

// String returns credentials with secrets redacted
func (c Credentials) String() string {
	return fmt.Sprintf("{UserPoolID:%v ClientID:%v ClientSecret:%v Username:%v Password:%v}", c.UserPoolID, c.ClientID, redact(c.ClientSecret), c.Username, redact(c.Password))
}

// GoString returns credentials with secrets redacted
func (c Credentials) GoString() string {
	return "auth.Credentials" + c.String()
}

// LogValue implements slog.LogValuer
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("userPoolId", c.UserPoolID),
		slog.String("clientId", c.ClientID),
		slog.String("clientSecret", redact(c.ClientSecret)),
		slog.String("username", c.Username),
		slog.String("password", redact(c.Password)),
	)
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}
