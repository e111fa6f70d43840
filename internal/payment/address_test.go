package payment

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateAddressIsFixed(t *testing.T) {
	a, bumpA, err := StateAddress(DefaultProgramID)
	require.NoError(t, err)
	b, bumpB, err := StateAddress(DefaultProgramID)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, bumpA, bumpB)

	other, _, err := StateAddress(solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestRecordAddressIsInjective(t *testing.T) {
	sender := repeatedKey(1)
	seen := make(map[solana.PublicKey]uint64)
	for seq := uint64(0); seq < 32; seq++ {
		addr, _, err := RecordAddress(DefaultProgramID, sender, seq)
		require.NoError(t, err)
		prev, dup := seen[addr]
		require.False(t, dup, "sequence %d collides with %d", seq, prev)
		seen[addr] = seq
	}

	a, _, err := RecordAddress(DefaultProgramID, repeatedKey(1), 5)
	require.NoError(t, err)
	b, _, err := RecordAddress(DefaultProgramID, repeatedKey(2), 5)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	again, _, err := RecordAddress(DefaultProgramID, repeatedKey(1), 5)
	require.NoError(t, err)
	assert.Equal(t, a, again)
}
