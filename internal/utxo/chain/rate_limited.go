package chain

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"go.uber.org/ratelimit"
)

// RateLimited caps the request rate sent to a Source.
type RateLimited struct {
	source Source
	rl     ratelimit.Limiter
}

// NewRateLimited allows at most rps calls per second. A non-positive rps disables the limit.
func NewRateLimited(source Source, rps int) *RateLimited {
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	return &RateLimited{source: source, rl: rl}
}

func (r *RateLimited) take(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.rl.Take()
	return nil
}

func (r *RateLimited) HeaderByDepth(ctx context.Context, depth uint64) (model.BlockHeader, error) {
	if err := r.take(ctx); err != nil {
		return model.BlockHeader{}, err
	}
	return r.source.HeaderByDepth(ctx, depth)
}

func (r *RateLimited) HeaderByHash(ctx context.Context, hash model.Hash) (model.BlockHeader, error) {
	if err := r.take(ctx); err != nil {
		return model.BlockHeader{}, err
	}
	return r.source.HeaderByHash(ctx, hash)
}

func (r *RateLimited) DepthByHash(ctx context.Context, hash model.Hash) (uint64, error) {
	if err := r.take(ctx); err != nil {
		return 0, err
	}
	return r.source.DepthByHash(ctx, hash)
}

func (r *RateLimited) CurrentHeight(ctx context.Context) (uint64, error) {
	if err := r.take(ctx); err != nil {
		return 0, err
	}
	return r.source.CurrentHeight(ctx)
}

func (r *RateLimited) TransactionHashesByDepth(ctx context.Context, depth uint64) ([]model.Hash, error) {
	if err := r.take(ctx); err != nil {
		return nil, err
	}
	return r.source.TransactionHashesByDepth(ctx, depth)
}

func (r *RateLimited) TransactionHashesByHash(ctx context.Context, hash model.Hash) ([]model.Hash, error) {
	if err := r.take(ctx); err != nil {
		return nil, err
	}
	return r.source.TransactionHashesByHash(ctx, hash)
}

func (r *RateLimited) TransactionBody(ctx context.Context, hash model.Hash) (model.TransactionBody, error) {
	if err := r.take(ctx); err != nil {
		return model.TransactionBody{}, err
	}
	return r.source.TransactionBody(ctx, hash)
}

func (r *RateLimited) TransactionIndex(ctx context.Context, hash model.Hash) (model.TransactionIndex, error) {
	if err := r.take(ctx); err != nil {
		return model.TransactionIndex{}, err
	}
	return r.source.TransactionIndex(ctx, hash)
}

func (r *RateLimited) OutpointsForAddress(ctx context.Context, address string) ([]model.Outpoint, error) {
	if err := r.take(ctx); err != nil {
		return nil, err
	}
	return r.source.OutpointsForAddress(ctx, address)
}

func (r *RateLimited) SpendingInput(ctx context.Context, outpoint model.Outpoint) (model.Inpoint, bool, error) {
	if err := r.take(ctx); err != nil {
		return model.Inpoint{}, false, err
	}
	return r.source.SpendingInput(ctx, outpoint)
}
