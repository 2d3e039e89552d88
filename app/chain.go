package app

import (
	"reflect"

	"github.com/iov-one/pairswap"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
// The first decorator is the outermost one.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators []pairswap.Decorator

// ChainDecorators starts a stack. Nil decorators, including typed nil
// pointers, are skipped so optional ones can be passed unconditionally.
func ChainDecorators(ds ...pairswap.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new stack with ds appended below the existing
// decorators. The receiver is not modified.
func (d Decorators) Chain(ds ...pairswap.Decorator) Decorators {
	out := make(Decorators, 0, len(d)+len(ds))
	out = append(out, d...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			out = append(out, dec)
		}
	}
	return out
}

func isNilDecorator(d pairswap.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler wraps h with the whole stack.
func (d Decorators) WithHandler(h pairswap.Handler) pairswap.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = step{d: d[i], next: h}
	}
	return h
}

// step runs one decorator around the rest of the stack.
type step struct {
	d    pairswap.Decorator
	next pairswap.Handler
}

var _ pairswap.Handler = step{}

func (s step) Check(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx) (*pairswap.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx) (*pairswap.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
