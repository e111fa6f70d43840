package payment

import (
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	alice := repeatedKey(1)
	bob := repeatedKey(2)
	valid := Params{
		Sender:        alice,
		Receiver:      bob,
		Amount:        300,
		SenderBalance: 1000,
		ReceiverOwner: solana.SystemProgramID,
		Memo:          "lunch",
	}

	for _, tc := range []struct {
		name   string
		modify func(p *Params)
		want   error
	}{
		{"valid", func(p *Params) {}, nil},
		{"whole balance", func(p *Params) { p.Amount = 1000 }, nil},
		{"empty memo", func(p *Params) { p.Memo = "" }, nil},
		{"200 characters", func(p *Params) { p.Memo = strings.Repeat("a", 200) }, nil},
		{"200 multibyte characters", func(p *Params) { p.Memo = strings.Repeat("é", 200) }, nil},
		{"zero amount", func(p *Params) { p.Amount = 0 }, ErrInvalidAmount},
		{"self payment", func(p *Params) { p.Receiver = alice }, ErrSelfPayment},
		{"201 characters", func(p *Params) { p.Memo = strings.Repeat("a", 201) }, ErrMemoTooLong},
		{"insufficient balance", func(p *Params) { p.Amount = 1001 }, ErrInsufficientBalance},
		{"program owned receiver", func(p *Params) { p.ReceiverOwner = DefaultProgramID }, ErrInvalidReceiver},
		{"zero amount wins over self payment", func(p *Params) {
			p.Amount = 0
			p.Receiver = alice
		}, ErrInvalidAmount},
		{"self payment wins over memo", func(p *Params) {
			p.Receiver = alice
			p.Memo = strings.Repeat("a", 201)
		}, ErrSelfPayment},
		{"memo wins over balance", func(p *Params) {
			p.Memo = strings.Repeat("a", 201)
			p.SenderBalance = 0
		}, ErrMemoTooLong},
		{"balance wins over receiver", func(p *Params) {
			p.SenderBalance = 10
			p.ReceiverOwner = DefaultProgramID
		}, ErrInsufficientBalance},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.modify(&p)
			err := Validate(p)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
