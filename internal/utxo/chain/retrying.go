package chain

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"go.uber.org/zap"
)

// Retrying repeats failed Source calls with a fixed backoff. Missing records
// and context errors are returned immediately.
type Retrying struct {
	source   Source
	attempts int
	backoff  time.Duration
	sleep    func(context.Context, time.Duration) error
	logger   *zap.Logger
}

// NewRetrying builds a Retrying source. attempts below 1 are treated as 1.
func NewRetrying(source Source, attempts int, backoff time.Duration, logger *zap.Logger) *Retrying {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrying{
		source:   source,
		attempts: attempts,
		backoff:  backoff,
		sleep:    clock.SleepWithContext,
		logger:   logger,
	}
}

func retry[T any](ctx context.Context, r *Retrying, operation string, call func() (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	for attempt := 1; ; attempt++ {
		result, err = call()
		if err == nil || !retryable(err) || attempt >= r.attempts {
			return result, err
		}
		r.logger.Warn("source call failed, backing off",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("sleep", r.backoff),
			zap.Error(err),
		)
		if sleepErr := r.sleep(ctx, r.backoff); sleepErr != nil {
			return result, err
		}
	}
}

func retryable(err error) bool {
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func (r *Retrying) HeaderByDepth(ctx context.Context, depth uint64) (model.BlockHeader, error) {
	return retry(ctx, r, "header_by_depth", func() (model.BlockHeader, error) {
		return r.source.HeaderByDepth(ctx, depth)
	})
}

func (r *Retrying) HeaderByHash(ctx context.Context, hash model.Hash) (model.BlockHeader, error) {
	return retry(ctx, r, "header_by_hash", func() (model.BlockHeader, error) {
		return r.source.HeaderByHash(ctx, hash)
	})
}

func (r *Retrying) DepthByHash(ctx context.Context, hash model.Hash) (uint64, error) {
	return retry(ctx, r, "depth_by_hash", func() (uint64, error) {
		return r.source.DepthByHash(ctx, hash)
	})
}

func (r *Retrying) CurrentHeight(ctx context.Context) (uint64, error) {
	return retry(ctx, r, "current_height", func() (uint64, error) {
		return r.source.CurrentHeight(ctx)
	})
}

func (r *Retrying) TransactionHashesByDepth(ctx context.Context, depth uint64) ([]model.Hash, error) {
	return retry(ctx, r, "transaction_hashes_by_depth", func() ([]model.Hash, error) {
		return r.source.TransactionHashesByDepth(ctx, depth)
	})
}

func (r *Retrying) TransactionHashesByHash(ctx context.Context, hash model.Hash) ([]model.Hash, error) {
	return retry(ctx, r, "transaction_hashes_by_hash", func() ([]model.Hash, error) {
		return r.source.TransactionHashesByHash(ctx, hash)
	})
}

func (r *Retrying) TransactionBody(ctx context.Context, hash model.Hash) (model.TransactionBody, error) {
	return retry(ctx, r, "transaction_body", func() (model.TransactionBody, error) {
		return r.source.TransactionBody(ctx, hash)
	})
}

func (r *Retrying) TransactionIndex(ctx context.Context, hash model.Hash) (model.TransactionIndex, error) {
	return retry(ctx, r, "transaction_index", func() (model.TransactionIndex, error) {
		return r.source.TransactionIndex(ctx, hash)
	})
}

func (r *Retrying) OutpointsForAddress(ctx context.Context, address string) ([]model.Outpoint, error) {
	return retry(ctx, r, "outpoints_for_address", func() ([]model.Outpoint, error) {
		return r.source.OutpointsForAddress(ctx, address)
	})
}

type spendResult struct {
	inpoint model.Inpoint
	found   bool
}

func (r *Retrying) SpendingInput(ctx context.Context, outpoint model.Outpoint) (model.Inpoint, bool, error) {
	res, err := retry(ctx, r, "spending_input", func() (spendResult, error) {
		inpoint, found, err := r.source.SpendingInput(ctx, outpoint)
		return spendResult{inpoint: inpoint, found: found}, err
	})
	return res.inpoint, res.found, err
}
