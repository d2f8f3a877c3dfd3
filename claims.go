package authstate

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// ParseTokenClaims decodes the claims of a JWT session token. The signature
// is NOT verified: verification belongs to the identity backend, this is
// for reading the subject or expiry on the client.
func ParseTokenClaims(token Token) (jwt.MapClaims, error) {
	if !token.Valid() {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(string(token), claims); err != nil {
		return nil, tokenError(ErrTokenMalformed, err)
	}

	return claims, nil
}

// CheckTokenExpiry fails with ErrTokenExpired once the exp claim is at or
// before now. Tokens without exp never expire.
func CheckTokenExpiry(claims jwt.MapClaims, now time.Time) error {
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return tokenError(ErrTokenMalformed, err)
	}
	if exp == nil || now.Before(exp.Time) {
		return nil
	}
	return tokenError(ErrTokenExpired, jwt.ErrTokenExpired).
		WithMetadata(map[string]any{"expired_at": exp.Time})
}

// TokenClaims returns the unverified claims of the current session token
func (c *Controller) TokenClaims(ctx context.Context) (jwt.MapClaims, error) {
	token, err := c.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return ParseTokenClaims(token)
}

// ActiveTokenClaims is TokenClaims plus an expiry check against the
// controller clock.
func (c *Controller) ActiveTokenClaims(ctx context.Context) (jwt.MapClaims, error) {
	claims, err := c.TokenClaims(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckTokenExpiry(claims, c.now()); err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenExpiresAt returns the exp claim of the current session token. The
// zero time is returned when the token carries no expiry.
func (c *Controller) TokenExpiresAt(ctx context.Context) (time.Time, error) {
	claims, err := c.TokenClaims(ctx)
	if err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, tokenError(ErrTokenMalformed, err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

func tokenError(sentinel *goerrors.Error, source error) *goerrors.Error {
	clone := sentinel.Clone()
	clone.Source = source
	return clone
}
