package app

import (
	"context"
	"testing"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/swaptest"
	"github.com/iov-one/pairswap/swaptest/assert"
)

func TestRouter(t *testing.T) {
	var (
		r   = NewRouter()
		msg = &swaptest.Msg{RoutePath: "test/good"}
		h   = &swaptest.Handler{}
	)

	r.Handle(msg, h)

	_, err := r.Check(context.Background(), nil, &swaptest.Tx{Msg: msg})
	assert.Nil(t, err)
	_, err = r.Deliver(context.Background(), nil, &swaptest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, 2, h.CallCount())

	_, err = r.Deliver(context.Background(), nil, &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "test/unknown"}})
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Check(context.Background(), nil, &swaptest.Tx{})
	assert.IsErr(t, errors.ErrMsg, err)

	_, err = r.Check(context.Background(), nil, &swaptest.Tx{Err: errors.ErrInput})
	assert.IsErr(t, errors.ErrInput, err)

	got, err := r.NewMsg("test/good")
	assert.Nil(t, err)
	assert.Equal(t, &swaptest.Msg{}, got)

	_, err = r.NewMsg("test/unknown")
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterPanics(t *testing.T) {
	cases := map[string]struct {
		Msg pairswap.Msg
	}{
		"invalid path":       {Msg: &swaptest.Msg{RoutePath: "bad path!"}},
		"empty path":         {Msg: &swaptest.Msg{}},
		"registered already": {Msg: &swaptest.Msg{RoutePath: "test/good"}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r := NewRouter()
			r.Handle(&swaptest.Msg{RoutePath: "test/good"}, &swaptest.Handler{})
			assert.Panics(t, func() { r.Handle(tc.Msg, &swaptest.Handler{}) })
		})
	}
}
