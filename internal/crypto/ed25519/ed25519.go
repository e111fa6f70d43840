// Package ed25519 verifies transaction signatures under ZIP-215 rules, so every node
// agrees on validity even for edge-case encodings that crypto/ed25519 treats differently.
package ed25519

import (
	"github.com/gagliardetto/solana-go"
	"github.com/hdevalence/ed25519consensus"
)

// Verify reports whether sig is signer's signature of msg.
func Verify(signer solana.PublicKey, msg []byte, sig solana.Signature) bool {
	if signer.IsZero() {
		return false
	}
	return ed25519consensus.Verify(signer[:], msg, sig[:])
}
