package swaptest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/pairswap"
	"golang.org/x/crypto/ed25519"
)

// Key is an ed25519 key pair of a test party.
type Key struct {
	Private ed25519.PrivateKey
}

// NewKey generates a new random key pair.
func NewKey(t testing.TB) *Key {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	return &Key{Private: priv}
}

// Address returns the address of the key owner.
func (k *Key) Address() pairswap.Address {
	return pairswap.PublicKeyAddress(k.Private.Public().(ed25519.PublicKey))
}

// Sign signs given message.
func (k *Key) Sign(msg []byte) []byte {
	return ed25519.Sign(k.Private, msg)
}

// NewAddress returns the address of a freshly generated key.
func NewAddress(t testing.TB) pairswap.Address {
	t.Helper()
	return NewKey(t).Address()
}

// SequenceAddress returns an address that is unique for every n. It is not a
// valid public key and should be used where a readable, stable value helps.
func SequenceAddress(n uint8) pairswap.Address {
	var a pairswap.Address
	a[0] = 0xA0
	a[pairswap.AddressLength-1] = n
	return a
}
