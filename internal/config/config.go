package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env   string `env:"ENV" env-required:"true"`
	HTTP  HTTPConfig
	Store StoreConfig
	CORS  CORSConfig
	Auth  AuthConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"PORT" env-default:"5000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type StoreConfig struct {
	URI            string        `env:"STORE_URI" env-required:"true"`
	Database       string        `env:"STORE_DATABASE" env-default:"todo"`
	ConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"STORE_PING_TIMEOUT" env-default:"10s"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

type AuthConfig struct {
	Domain   string `env:"AUTH_DOMAIN" env-required:"true"`
	Audience string `env:"AUTH_AUDIENCE" env-default:"todo-list-auth-api"`
	Issuer   string `env:"AUTH_ISSUER"`
	JWKSURL  string `env:"AUTH_JWKS_URL"`
}

// IssuerURL is the expected iss claim, https://<domain>/ unless set.
func (c AuthConfig) IssuerURL() string {
	if c.Issuer != "" {
		return c.Issuer
	}
	return "https://" + c.Domain + "/"
}

func (c AuthConfig) JWKSEndpoint() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}
	return "https://" + c.Domain + "/.well-known/jwks.json"
}

// ClientConfig configures the todo command line client.
type ClientConfig struct {
	APIURL  string        `env:"TODO_API_URL" env-default:"http://localhost:5000"`
	Token   string        `env:"TODO_TOKEN"`
	Timeout time.Duration `env:"TODO_TIMEOUT" env-default:"10s"`
}
