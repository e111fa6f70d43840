package ledger

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/crypto"
	"github.com/eigerco/ledgerpay/internal/crypto/ed25519"
)

// Instruction is a call into one program. The meaning of Accounts is defined by the program.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []solana.PublicKey
	Data      []byte
}

// Transaction is a single signed instruction. Nonce makes an intentional resubmission of
// the same instruction a distinct transaction.
type Transaction struct {
	Instruction Instruction
	Signer      solana.PublicKey
	Nonce       uint64
	Signature   solana.Signature
}

type message struct {
	Instruction Instruction
	Signer      solana.PublicKey
	Nonce       uint64
}

// NewNonce returns a random transaction nonce.
func NewNonce() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read nonce: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Message returns the bytes covered by the signature.
func (tx Transaction) Message() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := bin.NewBorshEncoder(buf).Encode(message{Instruction: tx.Instruction, Signer: tx.Signer, Nonce: tx.Nonce}); err != nil {
		return nil, fmt.Errorf("encode transaction message: %w", err)
	}
	return buf.Bytes(), nil
}

// Sign signs the message with key, which must belong to the transaction signer.
func (tx *Transaction) Sign(key solana.PrivateKey) error {
	if !key.PublicKey().Equals(tx.Signer) {
		return ErrSignerMismatch
	}
	msg, err := tx.Message()
	if err != nil {
		return err
	}
	sig, err := key.Sign(msg)
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}
	tx.Signature = sig
	return nil
}

// Verify checks the signature and returns the transaction id, blake2b(message ‖ signature).
func (tx Transaction) Verify() (crypto.Hash, error) {
	msg, err := tx.Message()
	if err != nil {
		return crypto.Hash{}, err
	}
	if !ed25519.Verify(tx.Signer, msg, tx.Signature) {
		return crypto.Hash{}, ErrBadSignature
	}
	return crypto.HashData(msg, tx.Signature[:]), nil
}
