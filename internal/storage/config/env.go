package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds overrides read from the environment
type Env struct {
	ConfigDir string `env:"MRMM_CONFIG_DIR"`
	DataDir   string `env:"MRMM_DATA_DIR"`
	GameDir   string `env:"MRMM_GAME_DIR"`
	LogLevel  string `env:"MRMM_LOG_LEVEL"`
}

// ParseEnv loads overrides from environment variables
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
