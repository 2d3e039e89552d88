package app

import (
	"context"
	"testing"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/swaptest"
	"github.com/iov-one/pairswap/swaptest/assert"
)

func TestChain(t *testing.T) {
	c1 := &swaptest.Decorator{}
	c2 := &swaptest.Decorator{}
	var missing *swaptest.Decorator
	h := &swaptest.Handler{}

	stack := ChainDecorators(c1, missing, nil).Chain(c2).WithHandler(h)

	ctx := context.Background()
	_, err := stack.Check(ctx, nil, &swaptest.Tx{})
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, nil, &swaptest.Tx{})
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainStopsOnError(t *testing.T) {
	failing := &swaptest.Decorator{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrUnauthorized}
	after := &swaptest.Decorator{}
	h := &swaptest.Handler{}

	var stack pairswap.Handler = ChainDecorators(failing, after).WithHandler(h)

	_, err := stack.Deliver(context.Background(), nil, &swaptest.Tx{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 0, after.CallCount())
	assert.Equal(t, 0, h.CallCount())
}

func TestChainKeepsReceiver(t *testing.T) {
	base := ChainDecorators(&swaptest.Decorator{})
	withTwo := base.Chain(&swaptest.Decorator{})
	withNil := base.Chain(nil)

	assert.Equal(t, 1, len(base))
	assert.Equal(t, 2, len(withTwo))
	assert.Equal(t, 1, len(withNil))
}
