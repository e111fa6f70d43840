package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ledgerpay/internal/payment"
	"github.com/eigerco/ledgerpay/pkg/log"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "ledgerpay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	id, err := cfg.Program()
	require.NoError(t, err)
	assert.Equal(t, payment.DefaultProgramID, id)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
db:
  backend: badger
  path: /var/lib/ledgerpay
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DB{Backend: BackendBadger, Path: "/var/lib/ledgerpay"}, cfg.DB)
	assert.Equal(t, payment.DefaultProgramID.String(), cfg.ProgramID)

	opts, err := cfg.LogOptions()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, opts.LogLevel)
	assert.Equal(t, log.JSONLogger, opts.Type)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "db: [unterminated"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(c *Config)
	}{
		{"unknown backend", func(c *Config) { c.DB.Backend = "sqlite" }},
		{"pebble without path", func(c *Config) { c.DB.Path = "" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad program id", func(c *Config) { c.ProgramID = "not-base58-0OIl" }},
		{"memory backend", func(c *Config) { c.DB = DB{Backend: BackendMemory} }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := Default()
	cfg.DB = DB{Backend: BackendBadger, Path: "data"}
	require.NoError(t, cfg.Validate())
}
