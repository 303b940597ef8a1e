package chain

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// Observed wraps a Source with per-operation metrics.
type Observed struct {
	source  Source
	metrics Metrics
}

// NewObserved constructs an instrumented Source.
func NewObserved(source Source, metrics Metrics) *Observed {
	return &Observed{
		source:  source,
		metrics: metrics,
	}
}

func (o *Observed) HeaderByDepth(ctx context.Context, depth uint64) (header model.BlockHeader, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("header_by_depth", err, started)
	}()
	return o.source.HeaderByDepth(ctx, depth)
}

func (o *Observed) HeaderByHash(ctx context.Context, hash model.Hash) (header model.BlockHeader, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("header_by_hash", err, started)
	}()
	return o.source.HeaderByHash(ctx, hash)
}

func (o *Observed) DepthByHash(ctx context.Context, hash model.Hash) (depth uint64, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("depth_by_hash", err, started)
	}()
	return o.source.DepthByHash(ctx, hash)
}

func (o *Observed) CurrentHeight(ctx context.Context) (height uint64, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("current_height", err, started)
	}()
	return o.source.CurrentHeight(ctx)
}

func (o *Observed) TransactionHashesByDepth(ctx context.Context, depth uint64) (hashes []model.Hash, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("transaction_hashes_by_depth", err, started)
	}()
	return o.source.TransactionHashesByDepth(ctx, depth)
}

func (o *Observed) TransactionHashesByHash(ctx context.Context, hash model.Hash) (hashes []model.Hash, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("transaction_hashes_by_hash", err, started)
	}()
	return o.source.TransactionHashesByHash(ctx, hash)
}

func (o *Observed) TransactionBody(ctx context.Context, hash model.Hash) (body model.TransactionBody, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("transaction_body", err, started)
	}()
	return o.source.TransactionBody(ctx, hash)
}

func (o *Observed) TransactionIndex(ctx context.Context, hash model.Hash) (index model.TransactionIndex, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("transaction_index", err, started)
	}()
	return o.source.TransactionIndex(ctx, hash)
}

func (o *Observed) OutpointsForAddress(ctx context.Context, address string) (outpoints []model.Outpoint, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("outpoints_for_address", err, started)
	}()
	return o.source.OutpointsForAddress(ctx, address)
}

func (o *Observed) SpendingInput(ctx context.Context, outpoint model.Outpoint) (inpoint model.Inpoint, found bool, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("spending_input", err, started)
	}()
	return o.source.SpendingInput(ctx, outpoint)
}
