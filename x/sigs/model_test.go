package sigs

import (
	"testing"

	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/swaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserData(t *testing.T) {
	u := &UserData{PubKey: swaptest.NewAddress(t), Sequence: 5}
	require.NoError(t, u.Validate())

	raw, err := u.Marshal()
	require.NoError(t, err)
	var got UserData
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, u, &got)

	assert.True(t, ErrInvalidSequence.Is(u.CheckAndIncrementSequence(4)))
	require.NoError(t, u.CheckAndIncrementSequence(5))
	assert.Equal(t, int64(6), u.Sequence)

	u.Sequence = maxSequenceValue
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence(maxSequenceValue)))

	assert.True(t, errors.ErrEmpty.Is((&UserData{}).Validate()))
}
