package token

import (
	"testing"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/store"
	"github.com/iov-one/pairswap/swaptest"
	"github.com/iov-one/pairswap/swaptest/assert"
)

var (
	mintX = swaptest.SequenceAddress(1)
	mintY = swaptest.SequenceAddress(2)
	alice = swaptest.SequenceAddress(10)
	bob   = swaptest.SequenceAddress(11)

	aliceX = swaptest.SequenceAddress(20)
	aliceY = swaptest.SequenceAddress(21)
	bobX   = swaptest.SequenceAddress(22)
)

func fixture(t testing.TB) (pairswap.KVStore, Controller) {
	t.Helper()
	db := store.MemStore()
	ctrl := NewController()
	assert.Nil(t, ctrl.Open(db, aliceX, mintX, alice))
	assert.Nil(t, ctrl.Open(db, aliceY, mintY, alice))
	assert.Nil(t, ctrl.Open(db, bobX, mintX, bob))
	assert.Nil(t, ctrl.Mint(db, aliceX, 100))
	return db, ctrl
}

func TestOpen(t *testing.T) {
	db, ctrl := fixture(t)

	acc, err := ctrl.Account(db, bobX)
	assert.Nil(t, err)
	assert.Equal(t, &Account{Mint: mintX, Owner: bob}, acc)

	err = ctrl.Open(db, bobX, mintY, alice)
	assert.IsErr(t, errors.ErrDuplicate, err)

	err = ctrl.Open(db, pairswap.Address{}, mintY, alice)
	assert.IsErr(t, errors.ErrEmpty, err)

	err = ctrl.Open(db, swaptest.SequenceAddress(99), pairswap.Address{}, alice)
	assert.IsErr(t, errors.ErrEmpty, err)

	_, err = ctrl.Account(db, swaptest.SequenceAddress(98))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestTransfer(t *testing.T) {
	cases := map[string]struct {
		Src, Dst  pairswap.Address
		Authority pairswap.Address
		Amount    uint64
		WantErr   *errors.Error
		WantSrc   uint64
		WantDst   uint64
	}{
		"full balance": {
			Src: aliceX, Dst: bobX, Authority: alice, Amount: 100,
			WantSrc: 0, WantDst: 100,
		},
		"part of the balance": {
			Src: aliceX, Dst: bobX, Authority: alice, Amount: 30,
			WantSrc: 70, WantDst: 30,
		},
		"insufficient balance": {
			Src: aliceX, Dst: bobX, Authority: alice, Amount: 101,
			WantErr: errors.ErrInsufficientAmount,
			WantSrc: 100,
		},
		"not the owner": {
			Src: aliceX, Dst: bobX, Authority: bob, Amount: 1,
			WantErr: errors.ErrUnauthorized,
			WantSrc: 100,
		},
		"different mints": {
			Src: aliceX, Dst: aliceY, Authority: alice, Amount: 1,
			WantErr: ErrMintMismatch,
			WantSrc: 100,
		},
		"zero amount": {
			Src: aliceX, Dst: bobX, Authority: alice, Amount: 0,
			WantErr: errors.ErrAmount,
			WantSrc: 100,
		},
		"self transfer": {
			Src: aliceX, Dst: aliceX, Authority: alice, Amount: 40,
			WantSrc: 100, WantDst: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, ctrl := fixture(t)

			err := ctrl.Transfer(db, tc.Src, tc.Dst, tc.Authority, tc.Amount)
			assert.IsErr(t, tc.WantErr, err)

			src, err := ctrl.Account(db, tc.Src)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantSrc, src.Amount)

			if tc.WantErr == nil {
				dst, err := ctrl.Account(db, tc.Dst)
				assert.Nil(t, err)
				assert.Equal(t, tc.WantDst, dst.Amount)
			}
		})
	}
}

func TestTransferUnknownAccount(t *testing.T) {
	db, ctrl := fixture(t)
	unknown := swaptest.SequenceAddress(77)

	assert.IsErr(t, errors.ErrNotFound, ctrl.Transfer(db, unknown, bobX, alice, 1))
	assert.IsErr(t, errors.ErrNotFound, ctrl.Transfer(db, aliceX, unknown, alice, 1))
}

func TestMintOverflow(t *testing.T) {
	db, ctrl := fixture(t)
	err := ctrl.Mint(db, aliceX, ^uint64(0))
	assert.IsErr(t, errors.ErrOverflow, err)

	acc, err := ctrl.Account(db, aliceX)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), acc.Amount)
}

func TestOwnedBy(t *testing.T) {
	db, ctrl := fixture(t)

	got, err := ctrl.OwnedBy(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, []pairswap.Address{aliceX, aliceY}, got)

	got, err = ctrl.OwnedBy(db, swaptest.SequenceAddress(55))
	assert.Nil(t, err)
	assert.Equal(t, []pairswap.Address{}, got)
}
