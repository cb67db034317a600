package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string        `env:"RUN_ADDRESS" env-default:"localhost:8080"`
	DatabaseURL      string        `env:"DATABASE_URI"`
	JWTSecret        string        `env:"JWT_SECRET" env-default:"privatekey"`
	TokenTTL         time.Duration `env:"TOKEN_TTL" env-default:"720h"`
	BcryptCost       int           `env:"BCRYPT_COST" env-default:"10"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" env-default:"15s"`
	AuthDisabledURLs []string      `env:"AUTH_DISABLED_URLS" env-default:"/,/signup,/login" env-separator:","`
}

func Load() (*Config, error) {
	// a local .env is optional
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.Addr, "a", "localhost:8080", "address of the HTTP server")
	flag.StringVar(&cfg.DatabaseURL, "d", "", "database URL")

	flag.Parse()

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	return cfg, nil
}
