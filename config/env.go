// Package config loads runtime configuration from the environment and
// builds the logger the rest of the program shares.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Modes a program can run in.
const (
	ModeTerm   = "term"
	ModeWeb    = "web"
	ModeScript = "script"
)

// Config is the runtime configuration.
type Config struct {
	Mode      string `env:"LAYERS_MODE" envDefault:"term"`
	Addr      string `env:"LAYERS_ADDR" envDefault:":8080"`
	Title     string `env:"LAYERS_TITLE" envDefault:"Hello Host"`
	Metrics   bool   `env:"LAYERS_METRICS" envDefault:"true"`
	LogLevel  string `env:"LAYERS_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LAYERS_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"LAYERS_LOG_FILE"`
}

// ErrInvalid marks errors caused by the LAYERS_* environment rather
// than by the program. Exit reports them with a usage exit code.
var ErrInvalid = errors.New("invalid configuration")

// ParseEnv fills the env-tagged fields of target, applying envDefault
// values for unset variables. A malformed value, such as a
// LAYERS_METRICS that is not a bool, is reported as ErrInvalid.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Load reads Config from LAYERS_* variables and rejects modes and log
// formats the program does not have.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	switch cfg.Mode {
	case ModeTerm, ModeWeb, ModeScript:
	default:
		return Config{}, fmt.Errorf("%w: LAYERS_MODE %q is not term, web or script", ErrInvalid, cfg.Mode)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("%w: LAYERS_LOG_FORMAT %q is not text or json", ErrInvalid, cfg.LogFormat)
	}
	return cfg, nil
}
