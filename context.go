package pairswap

import (
	"context"
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the pairswap module

const (
	contextKeyBlockTime contextKey = iota
	contextKeyLogger
	contextKeyChainID
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithBlockTime sets the block time for the context. Block time is the host
// clock: every time based validation must use it instead of the local
// clock.
//
// Panics if the block time was already set, a handler must not change the
// time of the block it is executed in.
func WithBlockTime(ctx Context, t time.Time) Context {
	if _, ok := BlockTime(ctx); ok {
		panic("block time already set")
	}
	return context.WithValue(ctx, contextKeyBlockTime, t)
}

// BlockTime returns current block wall clock time as declared in the context.
// An error is returned if a block time is not present in the context or if
// the zero time value is found.
func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// BlockUnixTime is BlockTime converted to the seconds precision used by
// all deadlines.
func BlockUnixTime(ctx Context) (UnixTime, bool) {
	t, ok := BlockTime(ctx)
	if !ok {
		return 0, false
	}
	return AsUnixTime(t), true
}

// IsExpired returns true if given time is in the past as compared to the "now"
// as declared for the block. Expiration is inclusive, meaning that if current
// time is equal to the expiration time than this function returns true.
//
// This function panic if the block time is not provided in the context. This
// must never happen. The panic is here to prevent from broken setup to be
// processing data incorrectly.
func IsExpired(ctx Context, t UnixTime) bool {
	now, ok := BlockUnixTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	return t <= now
}

// WithChainID sets the chain id for the Context.
// Panics if the chain id was already set.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain ID")
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id
// panics if chain id not already set (should never happen)
func GetChainID(ctx Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Chain id is not in context")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for this Context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	if val, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return val
	}
	return DefaultLogger
}
