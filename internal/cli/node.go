package cli

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/config"
	"github.com/eigerco/ledgerpay/internal/ledger"
	"github.com/eigerco/ledgerpay/internal/payment"
	"github.com/eigerco/ledgerpay/internal/store"
	"github.com/eigerco/ledgerpay/pkg/db"
	"github.com/eigerco/ledgerpay/pkg/db/badger"
	"github.com/eigerco/ledgerpay/pkg/db/pebble"
	"github.com/eigerco/ledgerpay/pkg/log"
)

// node is an opened ledger with the payment program registered.
type node struct {
	rt        *ledger.Runtime
	programID solana.PublicKey
}

// loadConfig reads the config file and applies flag overrides on top of it.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Backend != "" {
		cfg.DB.Backend = opts.Backend
	}
	if opts.DBPath != "" {
		cfg.DB.Path = opts.DBPath
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openKVStore(cfg config.DB) (db.KVStore, error) {
	switch cfg.Backend {
	case config.BackendPebble:
		return pebble.Open(cfg.Path)
	case config.BackendBadger:
		return badger.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func openNode(opts *RootOptions) (*node, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logOpts, err := cfg.LogOptions()
	if err != nil {
		return nil, err
	}
	logOpts.Output = os.Stderr
	log.Init(logOpts)

	programID, err := cfg.Program()
	if err != nil {
		return nil, err
	}
	kv, err := openKVStore(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DB.Backend, err)
	}

	rt := ledger.NewRuntime(store.NewAccounts(kv))
	rt.Register(payment.NewProgram(programID))

	log.Root.Debug().
		Str("backend", cfg.DB.Backend).
		Str("path", cfg.DB.Path).
		Str("program", programID.String()).
		Msg("ledger opened")
	return &node{rt: rt, programID: programID}, nil
}

func (n *node) Close() error {
	return n.rt.Close()
}
