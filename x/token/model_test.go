package token

import (
	"testing"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/orm"
	"github.com/iov-one/pairswap/swaptest/assert"
)

func TestAccountLayout(t *testing.T) {
	acc := Account{Mint: mintX, Owner: alice, Amount: 0x0201}
	raw, err := acc.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, AccountSize, len(raw))

	d := orm.Discriminator("TokenAccount")
	assert.Equal(t, d[:], raw[:8])
	assert.Equal(t, mintX[:], raw[8:40])
	assert.Equal(t, alice[:], raw[40:72])
	assert.Equal(t, []byte{0x01, 0x02, 0, 0, 0, 0, 0, 0}, raw[72:])

	var got Account
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, acc, got)
}

func TestAccountValidate(t *testing.T) {
	cases := map[string]struct {
		Acc     Account
		WantErr *errors.Error
	}{
		"valid":         {Acc: Account{Mint: mintX, Owner: alice}},
		"missing mint":  {Acc: Account{Owner: alice}, WantErr: errors.ErrEmpty},
		"missing owner": {Acc: Account{Mint: mintX, Owner: pairswap.Address{}}, WantErr: errors.ErrEmpty},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.WantErr, tc.Acc.Validate())
		})
	}
}
