// Package config loads the node configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"

	"github.com/eigerco/ledgerpay/internal/payment"
	"github.com/eigerco/ledgerpay/pkg/log"
)

const (
	BackendPebble = "pebble"
	BackendBadger = "badger"
	// BackendMemory names the in-memory stores. They cannot back the CLI, where every
	// command opens the ledger anew.
	BackendMemory = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

type DB struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	DB        DB     `yaml:"db"`
	Log       Log    `yaml:"log"`
	ProgramID string `yaml:"program_id"`
}

func Default() Config {
	return Config{
		DB:        DB{Backend: BackendPebble, Path: "ledgerpay-data"},
		Log:       Log{Level: "info", Format: "console"},
		ProgramID: payment.DefaultProgramID.String(),
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DB.Backend {
	case BackendPebble, BackendBadger:
		if c.DB.Path == "" {
			return fmt.Errorf("%w: db.path is required for the %s backend", ErrInvalidConfig, c.DB.Backend)
		}
	case BackendMemory:
		return fmt.Errorf("%w: db.backend %q does not persist between commands, use %s or %s",
			ErrInvalidConfig, BackendMemory, BackendPebble, BackendBadger)
	default:
		return fmt.Errorf("%w: unknown db.backend %q", ErrInvalidConfig, c.DB.Backend)
	}
	if _, err := log.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if _, err := log.ParseLoggerType(c.Log.Format); err != nil {
		return fmt.Errorf("%w: log.format: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Program(); err != nil {
		return fmt.Errorf("%w: program_id: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Program parses the configured program id.
func (c Config) Program() (solana.PublicKey, error) {
	return solana.PublicKeyFromBase58(c.ProgramID)
}

// LogOptions converts the log section for log.Init.
func (c Config) LogOptions() (log.Options, error) {
	level, err := log.ParseLogLevel(c.Log.Level)
	if err != nil {
		return log.Options{}, err
	}
	typ, err := log.ParseLoggerType(c.Log.Format)
	if err != nil {
		return log.Options{}, err
	}
	return log.Options{LogLevel: level, Type: typ}, nil
}
