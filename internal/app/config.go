package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/notebook-todo/internal/config"
	"github.com/adanyl0v/notebook-todo/internal/repository"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("store", repository.Kind(cfg.Store.URI)).
		Str("auth_domain", cfg.Auth.Domain).
		Strs("cors_origins", cfg.CORS.AllowedOrigins).
		Msg("read env")

	config.SetGlobal(cfg)
}
