package swaptest

import (
	"fmt"

	"github.com/iov-one/pairswap"
)

// Registry is a mock implementing pairswap.Registry that keeps registered
// handlers by message path.
type Registry struct {
	handlers map[string]pairswap.Handler
}

var _ pairswap.Registry = (*Registry)(nil)

func (r *Registry) Handle(m pairswap.Msg, h pairswap.Handler) {
	if r.handlers == nil {
		r.handlers = make(map[string]pairswap.Handler)
	}
	path := m.Path()
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.handlers[path] = h
}

// Handler returns the handler registered for given path or panics.
func (r *Registry) Handler(path string) pairswap.Handler {
	h, ok := r.handlers[path]
	if !ok {
		panic(fmt.Sprintf("no handler for %q", path))
	}
	return h
}
