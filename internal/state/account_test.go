package state

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountBytes(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	acc := Account{
		Lamports: 1_000_000,
		Owner:    owner,
		Data:     []byte{1, 2, 3, 0, 0},
	}

	b, err := acc.Bytes()
	require.NoError(t, err)
	// 8 lamports + 32 owner + 4 length prefix + 5 data
	require.Len(t, b, 49)
	assert.Equal(t, []byte{0x40, 0x42, 0x0f, 0, 0, 0, 0, 0}, b[:8])
	assert.Equal(t, owner[:], b[8:40])
	assert.Equal(t, []byte{5, 0, 0, 0}, b[40:44])

	decoded, err := AccountFromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, acc, decoded)
}

func TestAccountFromBytesTruncated(t *testing.T) {
	_, err := AccountFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestNewSystemAccount(t *testing.T) {
	acc := NewSystemAccount(5)
	assert.True(t, acc.IsSystemOwned())
	assert.Equal(t, uint64(5), acc.Lamports)

	acc.Owner = solana.NewWallet().PublicKey()
	assert.False(t, acc.IsSystemOwned())
}

func TestAccountClone(t *testing.T) {
	acc := Account{Data: []byte{1}}
	clone := acc.Clone()
	clone.Data[0] = 9
	assert.Equal(t, byte(1), acc.Data[0])
}
