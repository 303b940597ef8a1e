package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

var clickhouseOperations = newOperations("clickhouse_repository", "ClickHouse index lookups",
	[]float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30})

// ClickhouseRepository tracks the spend and address index queries.
type ClickhouseRepository struct{}

// NewClickhouseRepository creates a ClickhouseRepository collector.
func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records duration and status of an index query.
func (ClickhouseRepository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	clickhouseOperations.observe(operation, coin, network, err, started)
}
