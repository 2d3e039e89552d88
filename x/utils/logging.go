package utils

import (
	"time"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

// Logging writes one log entry per processed transaction with its path,
// processing time and outcome. Failures are logged at error level with the
// error code. Successful deliveries are logged at info level, successful
// checks at debug level.
type Logging struct{}

var _ pairswap.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Checker) (*pairswap.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, "check", start, msg, err)
	return res, err
}

func (Logging) Deliver(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Deliverer) (*pairswap.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, "deliver", start, msg, err)
	return res, err
}

func logResult(ctx pairswap.Context, tx pairswap.Tx, stage string, start time.Time, msg string, err error) {
	logger := pairswap.GetLogger(ctx).With(
		"stage", stage,
		"path", pairswap.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond)

	// An entry is written even for an empty message.
	switch {
	case err != nil:
		logger.Error(msg, "code", errors.Code(err), "err", err)
	case stage == "check":
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
