package payment

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

var (
	stateSeed       = []byte("state")
	transactionSeed = []byte("transaction")
)

// StateAddress is the fixed address of the counter singleton, derived from the "state" tag only.
func StateAddress(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{stateSeed}, programID)
}

// RecordAddress derives the address of the record stamped with sequence for sender.
// The counter never repeats a value, so for a given sender the seeds and therefore the
// address are never reused.
func RecordAddress(programID, sender solana.PublicKey, sequence uint64) (solana.PublicKey, uint8, error) {
	var seq [8]byte
	binary.LittleEndian.PutUint64(seq[:], sequence)
	return solana.FindProgramAddress([][]byte{transactionSeed, sender[:], seq[:]}, programID)
}
