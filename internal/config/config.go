package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, populated from the environment.
type Config struct {
	Addr         string `env:"ADDR" envDefault:":8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/cribbage.db"`

	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenIssuer string        `env:"TOKEN_ISSUER" envDefault:"cribbage-go"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	AppEnv       string        `env:"APP_ENV" envDefault:"development"`
	AIDelay      time.Duration `env:"AI_DELAY" envDefault:"600ms"`
	TracesExport string        `env:"OTEL_TRACES_EXPORTER" envDefault:"stdout"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AIDelay < 0 {
		return Config{}, fmt.Errorf("AI_DELAY must not be negative, got %s", cfg.AIDelay)
	}
	if cfg.TokenSecret == "" {
		// Game tokens only gate access to anonymous single-player games,
		// so an unset secret gets an ephemeral one rather than a startup
		// failure. Tokens then do not survive a restart.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return Config{}, fmt.Errorf("generate token secret: %w", err)
		}
		cfg.TokenSecret = hex.EncodeToString(buf)
	}
	return cfg, nil
}
