package credentials

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptyToken  = errors.New("credentials: token is empty")
	ErrOpaqueToken = errors.New("credentials: token is not a JWT")
)

// TokenInfo is what the console can learn about a stored token.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Inspect reads the registered claims of an orchestrator-issued JWT.
//
// The signature is NOT verified: the console does not hold the orchestrator's key
// and only uses the claims to bound how long the token is kept. The orchestrator
// remains the authority and rejects bad tokens with 401.
func Inspect(token string) (TokenInfo, error) {
	if token == "" {
		return TokenInfo{}, ErrEmptyToken
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, ErrOpaqueToken
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// TTL returns how long a token should be kept relative to now. Zero means no
// known expiry; a negative value means the token is already expired.
func (i TokenInfo) TTL(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() {
		return 0
	}
	d := i.ExpiresAt.Sub(now)
	if d <= 0 {
		return -1
	}
	return d
}
