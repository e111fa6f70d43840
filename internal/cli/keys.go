package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

type keygenResult struct {
	PublicKey string `json:"public_key"`
	Path      string `json:"path"`
}

// NewKeygenCommand creates the keygen command.
func NewKeygenCommand(rootOpts *RootOptions) *cobra.Command {
	var out string
	var force bool

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a keypair file",
		Long: `Generate a new ed25519 keypair and write it as a JSON byte array,
the format solana-keygen uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := solana.NewRandomPrivateKey()
			if err != nil {
				return fmt.Errorf("generate key: %w", err)
			}
			if err := writeKeypair(out, key, force); err != nil {
				return err
			}
			return rootOpts.output(cmd).Result(
				keygenResult{PublicKey: key.PublicKey().String(), Path: out},
				"Wrote keypair %s to %s", key.PublicKey(), out,
			)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "keypair.json", "output file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func writeKeypair(path string, key solana.PrivateKey, force bool) error {
	raw := make([]int, len(key))
	for i, b := range key {
		raw[i] = int(b)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fmt.Errorf("write keypair: %w", err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("write keypair: %w", err)
	}
	return f.Close()
}

func readKeypair(path string) (solana.PrivateKey, error) {
	if path == "" {
		return nil, fmt.Errorf("--keypair is required")
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keypair %s: %w", path, err)
	}
	return key, nil
}

// parseAddress accepts a base58 public key or a path to a keypair file.
func parseAddress(s string) (solana.PublicKey, error) {
	if pk, err := solana.PublicKeyFromBase58(s); err == nil {
		return pk, nil
	}
	if _, err := os.Stat(s); err == nil {
		key, err := readKeypair(s)
		if err != nil {
			return solana.PublicKey{}, err
		}
		return key.PublicKey(), nil
	}
	return solana.PublicKey{}, fmt.Errorf("%q is neither a public key nor a keypair file", s)
}
