package config

import (
	"errors"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrBlankCORSOrigin = errors.New("CORS_ALLOWED_ORIGINS contains a blank origin")

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	for _, origin := range cfg.CORS.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return nil, ErrBlankCORSOrigin
		}
	}
	return cfg, nil
}

func ReadClientEnv() (*ClientConfig, error) {
	cfg := new(ClientConfig)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
