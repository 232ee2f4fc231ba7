package app

import (
	"context"

	"github.com/adanyl0v/notebook-todo/internal/auth"
	"github.com/adanyl0v/notebook-todo/internal/config"
)

var globalTokenVerifier auth.TokenVerifier

// MustInitTokenVerifier loads the identity provider's key set. The key
// set is refreshed in the background for the lifetime of the process.
func MustInitTokenVerifier() {
	cfg := config.Global().Auth

	verifier, err := auth.NewJWKSVerifier(
		context.Background(),
		cfg.JWKSEndpoint(),
		cfg.IssuerURL(),
		cfg.Audience,
	)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("jwks_url", cfg.JWKSEndpoint()).
			Msg("failed to init token verifier")
		panic(err)
	}

	globalTokenVerifier = verifier
	globalLogger.Info().
		Str("issuer", cfg.IssuerURL()).
		Str("audience", cfg.Audience).
		Msg("initialized token verifier")
}
