package swaptest

import "github.com/iov-one/pairswap"

// Handler is a mock implementation of the pairswap.Handler interface. Each
// method call is counted.
type Handler struct {
	checkCall   int
	CheckResult pairswap.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult pairswap.DeliverResult
	DeliverErr    error

	// Write if set is stored by Deliver before returning.
	Write *Pair
}

// Pair is a key value pair written to the store by a mock.
type Pair struct {
	Key, Value []byte
}

var _ pairswap.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.CheckResult, error) {
	h.checkCall++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.DeliverResult, error) {
	h.deliverCall++
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return nil, err
		}
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
