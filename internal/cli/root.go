// Package cli implements the ledgerpay command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	Backend    string
	LogLevel   string
	Format     string // "json" | "text"
}

// NewRootCommand creates the root command of the ledgerpay CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ledgerpay",
		Short: "Peer-to-peer payments with on-ledger transaction records",
		Long: `ledgerpay runs the payment program against a local ledger.

Every payment moves lamports from the signer to a receiver and leaves an
immutable record at an address derived from the sender and a global
transaction counter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database directory (overrides db.path)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend: pebble|badger (overrides db.backend)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (overrides log.level)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (json|text)")

	cmd.AddCommand(NewKeygenCommand(opts))
	cmd.AddCommand(NewFundCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewPayCommand(opts))
	cmd.AddCommand(NewBalanceCommand(opts))
	cmd.AddCommand(NewStateCommand(opts))
	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewTxCommand(opts))

	return cmd
}

func (o *RootOptions) output(cmd *cobra.Command) outputFormatter {
	return outputFormatter{format: o.Format, w: cmd.OutOrStdout()}
}
