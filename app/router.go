package app

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// dispatches transactions to them by the path of their message.
//
// Router also knows the message type of every path, which is used to decode
// transactions.
type Router struct {
	routes map[string]pairswap.Handler
	msgs   map[string]reflect.Type
}

var _ pairswap.Registry = (*Router)(nil)
var _ pairswap.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]pairswap.Handler),
		msgs:   make(map[string]reflect.Type),
	}
}

// Handle adds a new handler for the messages of given type. It panics on
// an invalid or already registered path.
func (r *Router) Handle(m pairswap.Msg, h pairswap.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	t := reflect.TypeOf(m)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("message of %q must be a pointer, got %T", path, m))
	}
	r.routes[path] = h
	r.msgs[path] = t.Elem()
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx) (*pairswap.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx) (*pairswap.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, tx)
}

func (r *Router) handler(tx pairswap.Tx) (pairswap.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "empty transaction")
	}
	path := msg.Path()
	h, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", path)
	}
	return h, nil
}

// NewMsg returns an empty message of the type registered for given path.
func (r *Router) NewMsg(path string) (pairswap.Msg, error) {
	t, ok := r.msgs[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no message for %q", path)
	}
	return reflect.New(t).Interface().(pairswap.Msg), nil
}
