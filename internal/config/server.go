package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ServerConfig configures the SSH server. Values come from an optional
// YAML file, overridden by TETRIS_* environment variables.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"TETRIS_SSH_ADDR" env-default:":23234"`
	HostKeyPath string        `yaml:"host_key" env:"TETRIS_HOST_KEY"`
	DBPath      string        `yaml:"db" env:"TETRIS_DB" env-default:"~/.tetris/scores.db"`
	Mode        string        `yaml:"mode" env:"TETRIS_MODE" env-default:"tetris"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"TETRIS_IDLE_TIMEOUT" env-default:"30m"`
	MaxSessions int           `yaml:"max_sessions" env:"TETRIS_MAX_SESSIONS" env-default:"64"`
	LogLevel    string        `yaml:"log_level" env:"TETRIS_LOG_LEVEL" env-default:"info"`
}

// LoadServer reads the server config. With an empty path only the
// environment and defaults are used.
func LoadServer(path string) (ServerConfig, error) {
	var cfg ServerConfig

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return ServerConfig{}, fmt.Errorf("config: load server config: %w", err)
	}

	if cfg.MaxSessions < 1 {
		return ServerConfig{}, &ValidationError{Field: "max_sessions", Reason: "must be at least 1"}
	}
	return cfg, nil
}
