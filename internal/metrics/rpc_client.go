package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
)

var rpcOperations = newOperations("rpc_client", "node RPC operations", prometheus.DefBuckets)

// RPCClient tracks node RPC calls for one coin and network.
type RPCClient struct {
	coin    model.Coin
	network model.Network
}

// NewRPCClient constructs an RPCClient collector.
func NewRPCClient(coin model.Coin, network model.Network) *RPCClient {
	return &RPCClient{coin: coin, network: network}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	rpcOperations.observe(operation, m.coin, m.network, err, started)
}
