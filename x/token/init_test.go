package token

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/store"
	"github.com/iov-one/pairswap/swaptest/assert"
)

func TestGenesis(t *testing.T) {
	genesis := `{"token": [
		{"address": "` + aliceX.String() + `", "mint": "` + mintX.String() + `", "owner": "` + alice.String() + `", "amount": 100},
		{"address": "` + bobX.String() + `", "mint": "` + mintX.String() + `", "owner": "` + bob.String() + `"}
	]}`
	var opts pairswap.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController()
	acc, err := ctrl.Account(db, aliceX)
	assert.Nil(t, err)
	assert.Equal(t, &Account{Mint: mintX, Owner: alice, Amount: 100}, acc)

	acc, err = ctrl.Account(db, bobX)
	assert.Nil(t, err)
	assert.Equal(t, &Account{Mint: mintX, Owner: bob}, acc)

	// The same addresses cannot be allocated twice.
	err = Initializer{}.FromGenesis(opts, db)
	assert.IsErr(t, errors.ErrDuplicate, err)
}
