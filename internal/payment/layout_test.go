package payment

import (
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatedKey(b byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = b
	}
	return k
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestDiscriminators(t *testing.T) {
	assert.Equal(t, discriminator{206, 23, 5, 97, 161, 157, 25, 107}, transactionRecordDiscriminator)
	assert.Equal(t, discriminator{77, 209, 137, 229, 149, 67, 167, 230}, programStateDiscriminator)
	assert.Equal(t, "7af0b6eb36cd0c7f", hex.EncodeToString(sendPaymentDiscriminator[:]))
	assert.Equal(t, "beabe0dbd948c7b0", hex.EncodeToString(initializeStateDiscriminator[:]))
}

func TestAccountSizes(t *testing.T) {
	assert.Equal(t, 892, TransactionRecordLen)
	assert.Equal(t, 16, ProgramStateLen)
}

func TestTransactionRecordEncoding(t *testing.T) {
	record := TransactionRecord{
		Sender:    repeatedKey(1),
		Receiver:  repeatedKey(2),
		Amount:    300,
		Timestamp: 1700000000,
		Memo:      "lunch",
	}
	b, err := record.Bytes()
	require.NoError(t, err)
	newGoldie(t).Assert(t, "transaction_record", []byte(hex.EncodeToString(b)))

	// Allocated accounts are zero padded past the encoded record.
	padded := make([]byte, TransactionRecordLen)
	copy(padded, b)
	decoded, err := DecodeTransactionRecord(padded)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestLongestMemoFits(t *testing.T) {
	memo := ""
	for i := 0; i < MaxMemoLength; i++ {
		memo += "𝄞" // 4 bytes in UTF-8
	}
	b, err := TransactionRecord{Memo: memo}.Bytes()
	require.NoError(t, err)
	assert.Len(t, b, TransactionRecordLen)
}

func TestProgramStateEncoding(t *testing.T) {
	b, err := ProgramState{TotalTransactions: 7}.Bytes()
	require.NoError(t, err)
	newGoldie(t).Assert(t, "program_state", []byte(hex.EncodeToString(b)))

	decoded, err := DecodeProgramState(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), decoded.TotalTransactions)
}

func TestSendPaymentInstructionEncoding(t *testing.T) {
	ix, err := SendPaymentInstruction(DefaultProgramID, repeatedKey(1), repeatedKey(2), 0, SendPaymentArgs{Amount: 300, Memo: "lunch"})
	require.NoError(t, err)
	newGoldie(t).Assert(t, "send_payment_instruction", []byte(hex.EncodeToString(ix.Data)))
}

func TestDecodeRejectsForeignAccounts(t *testing.T) {
	st, err := ProgramState{TotalTransactions: 1}.Bytes()
	require.NoError(t, err)

	_, err = DecodeTransactionRecord(st)
	assert.ErrorIs(t, err, ErrAccountDiscriminatorMismatch)

	_, err = DecodeProgramState(st[:4])
	assert.ErrorIs(t, err, ErrAccountDiscriminatorMismatch)

	_, err = DecodeProgramState(st[:discriminatorLength+3])
	assert.ErrorIs(t, err, ErrAccountDidNotDeserialize)
}
