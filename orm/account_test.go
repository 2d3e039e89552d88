package orm

import (
	"testing"

	"github.com/iov-one/pairswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Key   [4]byte
	Value uint64
	Flag  uint8
}

func TestAccountLayout(t *testing.T) {
	in := sample{Key: [4]byte{1, 2, 3, 4}, Value: 0x0102, Flag: 1}
	raw, err := EncodeAccount("Sample", in)
	require.NoError(t, err)

	d := Discriminator("Sample")
	assert.Equal(t, d[:], raw[:DiscriminatorLength])
	assert.Equal(t, []byte{
		1, 2, 3, 4,
		0x02, 0x01, 0, 0, 0, 0, 0, 0,
		1,
	}, raw[DiscriminatorLength:])

	var out sample
	require.NoError(t, DecodeAccount("Sample", raw, &out))
	assert.Equal(t, in, out)

	if err := DecodeAccount("Other", raw, &out); !errors.ErrType.Is(err) {
		t.Fatalf("want type error, got %+v", err)
	}
	if err := DecodeAccount("Sample", raw[:3], &out); !errors.ErrType.Is(err) {
		t.Fatalf("want type error for short input, got %+v", err)
	}
}

func TestDiscriminatorIsStable(t *testing.T) {
	assert.Equal(t, Discriminator("Escrow"), Discriminator("Escrow"))
	assert.NotEqual(t, Discriminator("Escrow"), Discriminator("TokenAccount"))
}
