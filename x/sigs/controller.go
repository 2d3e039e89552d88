package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/orm"
	"golang.org/x/crypto/ed25519"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx and increments the
// sequence of every signer.
//
// returns list of signer addresses (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(db pairswap.KVStore, tx SignedTx, chainID string) ([]pairswap.Address, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()

	bucket := NewBucket()
	signers := make([]pairswap.Address, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := verifySignature(db, bucket, sig, bz, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// verifySignature checks one signature against signbytes,
// check chain and updates state in the store
func verifySignature(db pairswap.KVStore, bucket orm.ModelBucket, sig *StdSignature, signBytes []byte, chainID string) (pairswap.Address, error) {
	var signer pairswap.Address
	if err := sig.Validate(); err != nil {
		return signer, err
	}
	signer = pairswap.PublicKeyAddress(ed25519.PublicKey(sig.PubKey))

	user, err := loadUser(db, bucket, signer)
	if err != nil {
		return signer, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return signer, err
	}
	if !ed25519.Verify(ed25519.PublicKey(sig.PubKey), toSign, sig.Signature) {
		return signer, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return signer, err
	}
	if err := bucket.Put(db, signer[:], user); err != nil {
		return signer, errors.Wrap(err, "save user")
	}
	return signer, nil
}

/*
BuildSignBytes combines all info on the actual tx before signing

We use the following format:

version | len(chainID) | chainID      | nonce             | signBytes
4bytes  | uint8        | ascii string | int64 (bigendian) | serialized transaction

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !pairswap.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, 4+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, []byte(chainID)...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	// constant length output to feed into eddsa
	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// BuildSignBytesTx calculates the sign bytes given a tx
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature for the given tx
func SignTx(key ed25519.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Sequence:  seq,
		PubKey:    key.Public().(ed25519.PublicKey),
		Signature: ed25519.Sign(key, signBytes),
	}, nil
}

// NextNonce returns the next numeric nonce value that should be used during a
// transaction signing.
func NextNonce(db pairswap.ReadOnlyKVStore, signer pairswap.Address) (int64, error) {
	u, err := loadUser(db, NewBucket(), signer)
	if err != nil {
		return 0, err
	}
	return u.Sequence, nil
}
