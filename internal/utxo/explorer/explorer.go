// Package explorer exposes chain data as a lazily populated graph of block,
// transaction, input and output proxies.
//
// Proxies are created fresh per lookup and never shared through a global
// cache. Each proxy resolves a group of fields with one data source call on
// first access and keeps the result for its lifetime; two proxies for the
// same entity resolve independently.
package explorer

import (
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"go.uber.org/zap"
)

// Explorer bundles the three entry points into the chain graph.
type Explorer struct {
	source chain.Source
	codec  AddressCodec
	logger *zap.Logger

	Blocks       *Blocks
	Transactions *Transactions
	Outputs      *Outputs
}

// New creates an Explorer over source. codec may be nil, in which case
// addresses are neither validated nor decoded.
func New(source chain.Source, codec AddressCodec, logger *zap.Logger) (*Explorer, error) {
	if source == nil {
		return nil, errors.New("explorer source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	x := &Explorer{
		source: source,
		codec:  codec,
		logger: logger,
	}
	x.Blocks = &Blocks{x: x}
	x.Transactions = &Transactions{x: x}
	x.Outputs = &Outputs{x: x}
	return x, nil
}
