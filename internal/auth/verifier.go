// Package auth verifies bearer tokens issued by an external identity
// provider and turns them into the principal that owns tasks.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token has no subject")
)

// TokenVerifier maps a bearer token to the verified principal ID.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type jwtVerifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewJWTVerifier returns a verifier accepting RS256 tokens signed with a
// key returned by keyfunc, issued by issuer for audience.
func NewJWTVerifier(keyfunc jwt.Keyfunc, issuer, audience string) TokenVerifier {
	return &jwtVerifier{
		keyfunc: keyfunc,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// NewJWKSVerifier fetches the provider's key set from jwksURL and keeps
// it refreshed in the background until ctx is done.
func NewJWKSVerifier(ctx context.Context, jwksURL, issuer, audience string) (TokenVerifier, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load jwks from %s: %w", jwksURL, err)
	}
	return NewJWTVerifier(k.Keyfunc, issuer, audience), nil
}

func (v *jwtVerifier) Verify(_ context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := v.parser.ParseWithClaims(token, claims, v.keyfunc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
