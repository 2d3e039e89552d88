package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// the time of their delivery.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ pairswap.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pairswap",
			Name:      "tx_total",
			Help:      "Number of processed transactions.",
		}, []string{"stage", "path", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pairswap",
			Name:      "tx_deliver_duration_seconds",
			Help:      "Time of transaction delivery.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path"}),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(errors.ErrHuman, "register metrics: %s", err)
		}
	}
	return m, nil
}

// Check counts the transaction.
func (m *Metrics) Check(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Checker) (*pairswap.CheckResult, error) {
	res, err := next.Check(ctx, store, tx)
	m.total.WithLabelValues("check", pairswap.GetPath(tx), result(err)).Inc()
	return res, err
}

// Deliver counts the transaction and measures the delivery time.
func (m *Metrics) Deliver(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Deliverer) (*pairswap.DeliverResult, error) {
	path := pairswap.GetPath(tx)
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	m.total.WithLabelValues("deliver", path, result(err)).Inc()
	return res, err
}

// result returns the label of the outcome. Failures are labeled with the
// code of their root error.
func result(err error) string {
	if err == nil {
		return "ok"
	}
	return strconv.FormatUint(uint64(errors.Code(err)), 10)
}
