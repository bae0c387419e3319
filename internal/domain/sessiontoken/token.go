package sessiontoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrMalformedToken means the bearer token does not carry a readable
// claims segment. The token is still usable as an opaque credential.
var ErrMalformedToken = errors.New("token has no readable claims segment")

// Claims are the fields embedded in the backend's bearer token. They are
// read for diagnostics only; expiry is enforced by the backend, never here.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token expiry lies before now. Diagnostic
// only; an expired token is still sent and the backend's 401 is the
// authoritative answer.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}

// ParseClaims decodes the claims segment of a three-part bearer token.
// PRE: token may carry an optional "Bearer " prefix
// POST: Returns the embedded subject and expiry, or ErrMalformedToken
func ParseClaims(token string) (Claims, error) {
	token = strings.TrimPrefix(token, "Bearer ")
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrMalformedToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrMalformedToken
	}
	var payload struct {
		Sub string `json:"sub"`
		Exp int64  `json:"exp"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Claims{}, ErrMalformedToken
	}
	claims := Claims{Subject: payload.Sub}
	if payload.Exp > 0 {
		claims.ExpiresAt = time.Unix(payload.Exp, 0)
	}
	return claims, nil
}
