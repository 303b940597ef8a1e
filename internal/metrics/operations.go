package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess  = "success"
	statusNotFound = "not_found"
	statusCanceled = "canceled"
	statusError    = "error"
)

var operationLabels = []string{"operation", "coin", "network", "status"}

// operations is a counter and duration histogram pair labelled the same way
// for every remote call site: the node RPC, the index and the chain source.
type operations struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newOperations(subsystem, help string, buckets []float64) operations {
	return operations{
		total: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockinsight7000",
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Count of " + help + ".",
		}, operationLabels),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blockinsight7000",
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Duration of " + help + ".",
			Buckets:   buckets,
		}, operationLabels),
	}
}

func (o operations) observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	labels := []string{operation, orUnknown(string(coin)), orUnknown(string(network)), statusOf(err)}
	o.total.WithLabelValues(labels...).Inc()
	o.duration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
}

// statusOf classifies a call outcome. Missing records, whether reported by
// the chain layer or as a node RPC error code, are not counted as failures.
func statusOf(err error) string {
	if err == nil {
		return statusSuccess
	}
	if errors.Is(err, chain.ErrNotFound) {
		return statusNotFound
	}
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case btcjson.ErrRPCInvalidAddressOrKey, btcjson.ErrRPCInvalidParameter:
			return statusNotFound
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return statusCanceled
	}
	return statusError
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
