package utils

import (
	"time"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures how
// long it takes to process them. Collectors are labeled with the kind of the
// call (check or deliver), the message path and the result.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ artmarket.Decorator = Metrics{}

var metricLabels = []string{"kind", "path", "result"}

// NewMetrics creates a Metrics decorator with collectors registered in given
// registerer. Creating a second decorator for the same namespace and
// registerer reuses the already registered collectors.
func NewMetrics(namespace string, reg prometheus.Registerer) (Metrics, error) {
	txs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_total",
		Help:      "Number of processed transactions.",
	}, metricLabels)
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "transaction_duration_seconds",
		Help:      "Time spent processing a transaction.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, metricLabels)

	if err := reg.Register(txs); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return Metrics{}, errors.Wrap(errors.ErrHuman, err.Error())
		}
		txs = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(duration); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return Metrics{}, errors.Wrap(errors.ErrHuman, err.Error())
		}
		duration = are.ExistingCollector.(*prometheus.HistogramVec)
	}

	return Metrics{txs: txs, duration: duration}, nil
}

// Check observes the check call.
func (m Metrics) Check(ctx artmarket.Context, store artmarket.KVStore, tx artmarket.Tx, next artmarket.Checker) (*artmarket.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver observes the deliver call.
func (m Metrics) Deliver(ctx artmarket.Context, store artmarket.KVStore, tx artmarket.Tx, next artmarket.Deliverer) (*artmarket.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m Metrics) observe(kind string, tx artmarket.Tx, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	path := artmarket.GetPath(tx)
	m.txs.WithLabelValues(kind, path, result).Inc()
	m.duration.WithLabelValues(kind, path, result).Observe(time.Since(start).Seconds())
}
