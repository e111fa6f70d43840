package payment

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	MaxMemoLength = 200               // characters
	MaxMemoBytes  = MaxMemoLength * 4 // worst case UTF-8 width

	discriminatorLength = 8
	publicKeyLength     = 32
	u64Length           = 8
	i64Length           = 8
	stringLengthPrefix  = 4
)

// Allocated account sizes.
const (
	TransactionRecordLen = discriminatorLength +
		publicKeyLength + // sender
		publicKeyLength + // receiver
		u64Length + // amount
		i64Length + // timestamp
		stringLengthPrefix + MaxMemoBytes // memo
	ProgramStateLen = discriminatorLength + u64Length
)

type discriminator [discriminatorLength]byte

// newDiscriminator is the first 8 bytes of sha256("<namespace>:<name>").
func newDiscriminator(namespace, name string) discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d discriminator
	copy(d[:], sum[:discriminatorLength])
	return d
}

var (
	transactionRecordDiscriminator = newDiscriminator("account", "TransactionRecord")
	programStateDiscriminator      = newDiscriminator("account", "ProgramState")

	sendPaymentDiscriminator     = newDiscriminator("global", "send_payment")
	initializeStateDiscriminator = newDiscriminator("global", "initialize_state")
)

// TransactionRecord is the immutable record of one committed payment.
type TransactionRecord struct {
	Sender    solana.PublicKey
	Receiver  solana.PublicKey
	Amount    uint64 // lamports
	Timestamp int64  // unix seconds, host clock
	Memo      string
}

// ProgramState is the global counter singleton.
type ProgramState struct {
	TotalTransactions uint64
}

// SendPaymentArgs are the send_payment instruction arguments.
type SendPaymentArgs struct {
	Amount uint64
	Memo   string
}

// SendPaymentResult is the send_payment return data.
type SendPaymentResult struct {
	Record            solana.PublicKey
	TotalTransactions uint64
}

func (r TransactionRecord) Bytes() ([]byte, error) {
	return encodeWithDiscriminator(transactionRecordDiscriminator, r)
}

func DecodeTransactionRecord(b []byte) (TransactionRecord, error) {
	var r TransactionRecord
	if err := decodeWithDiscriminator(transactionRecordDiscriminator, b, &r); err != nil {
		return TransactionRecord{}, err
	}
	return r, nil
}

func (s ProgramState) Bytes() ([]byte, error) {
	return encodeWithDiscriminator(programStateDiscriminator, s)
}

func DecodeProgramState(b []byte) (ProgramState, error) {
	var s ProgramState
	if err := decodeWithDiscriminator(programStateDiscriminator, b, &s); err != nil {
		return ProgramState{}, err
	}
	return s, nil
}

func (r SendPaymentResult) Bytes() ([]byte, error) {
	return encodeBorsh(r)
}

// DecodeSendPaymentResult parses the return data of a successful send_payment.
func DecodeSendPaymentResult(b []byte) (SendPaymentResult, error) {
	var r SendPaymentResult
	if err := bin.NewBorshDecoder(b).Decode(&r); err != nil {
		return SendPaymentResult{}, fmt.Errorf("decode send_payment result: %w", err)
	}
	return r, nil
}

func encodeBorsh(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWithDiscriminator(d discriminator, v interface{}) ([]byte, error) {
	body, err := encodeBorsh(v)
	if err != nil {
		return nil, err
	}
	return append(d[:], body...), nil
}

// decodeWithDiscriminator ignores trailing bytes: accounts are allocated at their maximum size.
func decodeWithDiscriminator(d discriminator, b []byte, v interface{}) error {
	if len(b) < discriminatorLength || !bytes.Equal(b[:discriminatorLength], d[:]) {
		return ErrAccountDiscriminatorMismatch
	}
	if err := bin.NewBorshDecoder(b[discriminatorLength:]).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountDidNotDeserialize, err)
	}
	return nil
}
