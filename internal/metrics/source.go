// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
)

var sourceOperations = newOperations("source",
	"chain data source lookups, retries and rate limiting included", prometheus.DefBuckets)

// Source tracks lookups made by the explorer against its data source.
type Source struct {
	coin    model.Coin
	network model.Network
}

// NewSource constructs a Source collector labelled with coin and network.
func NewSource(coin model.Coin, network model.Network) *Source {
	return &Source{coin: coin, network: network}
}

// Observe records a lookup outcome.
func (m Source) Observe(operation string, err error, started time.Time) {
	sourceOperations.observe(operation, m.coin, m.network, err, started)
}
