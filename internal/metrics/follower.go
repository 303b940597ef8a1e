package metrics

import (
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	followerBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "follower",
		Name:      "blocks_total",
		Help:      "Count of blocks walked by the chain follower.",
	}, []string{"coin", "network"})
	followerReorgsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "follower",
		Name:      "reorgs_total",
		Help:      "Count of broken block linkages seen while following the tip.",
	}, []string{"coin", "network"})
	followerHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "follower",
		Name:      "height",
		Help:      "Depth of the last block walked by the chain follower.",
	}, []string{"coin", "network"})
)

// Follower tracks progress of the tip follower.
type Follower struct {
	coin    model.Coin
	network model.Network
}

func NewFollower(coin model.Coin, network model.Network) *Follower {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Follower{coin: coin, network: network}
}

// ObserveBlock records a walked block at depth.
func (m Follower) ObserveBlock(depth uint64) {
	followerBlocksTotal.WithLabelValues(string(m.coin), string(m.network)).Inc()
	followerHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(depth))
}

func (m Follower) ObserveReorg() {
	followerReorgsTotal.WithLabelValues(string(m.coin), string(m.network)).Inc()
}
