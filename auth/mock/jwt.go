package mock

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// createJWT creates a signed JWT token for username with the given token use and expiry
func (p *IdentityProvider) createJWT(username, tokenUse string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":       p.Issuer,
		"sub":       username,
		"client_id": p.ClientID,
		"token_use": tokenUse,
		"jti":       uuid.New().String(),
		"exp":       now.Add(expiry).Unix(),
		"iat":       now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.SigningKey)
}
