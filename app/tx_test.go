package app

import (
	"testing"

	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/swaptest"
	"github.com/iov-one/pairswap/swaptest/assert"
	"github.com/iov-one/pairswap/x/token"
)

func TestTxEncoding(t *testing.T) {
	r := NewRouter()
	token.RegisterRoutes(r, &swaptest.Auth{}, token.NewController())
	decode := TxDecoder(r)

	key := swaptest.NewKey(t)
	msg := &token.TransferMsg{
		Source:      swaptest.SequenceAddress(1).Bytes(),
		Destination: swaptest.SequenceAddress(2).Bytes(),
		Amount:      5,
	}
	tx, err := NewTx(msg)
	assert.Nil(t, err)
	unsigned, err := tx.GetSignBytes()
	assert.Nil(t, err)

	assert.Nil(t, tx.Sign(key.Private, "test-chain", 0))
	assert.Nil(t, tx.Sign(key.Private, "test-chain", 1))
	assert.Equal(t, 2, len(tx.Signatures))

	// Signatures are not part of the signed content.
	signed, err := tx.GetSignBytes()
	assert.Nil(t, err)
	assert.Equal(t, unsigned, signed)

	raw, err := tx.Marshal()
	assert.Nil(t, err)
	decoded, err := decode(raw)
	assert.Nil(t, err)

	got, err := decoded.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, msg, got)
	assert.Equal(t, tx.Signatures, decoded.(*Tx).Signatures)

	var plain Tx
	assert.Nil(t, plain.Unmarshal(raw))
	_, err = plain.GetMsg()
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestTxDecoderRejects(t *testing.T) {
	r := NewRouter()
	token.RegisterRoutes(r, &swaptest.Auth{}, token.NewController())
	decode := TxDecoder(r)

	unknown, err := (&Tx{Path: "nope/nope"}).Marshal()
	assert.Nil(t, err)
	_, err = decode(unknown)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = decode([]byte{0xff, 0xff, 0xff})
	assert.IsErr(t, errors.ErrInput, err)
}
