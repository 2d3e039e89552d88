package swaptest

import "github.com/iov-one/pairswap"

// Decorator is a mock implementation of the pairswap.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ pairswap.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx, next pairswap.Checker) (*pairswap.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return &pairswap.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx, next pairswap.Deliverer) (*pairswap.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return &pairswap.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that processes every request with given
// decorator wrapping given handler.
func Decorate(h pairswap.Handler, d pairswap.Decorator) pairswap.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn pairswap.Handler
	dc pairswap.Decorator
}

var _ pairswap.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
