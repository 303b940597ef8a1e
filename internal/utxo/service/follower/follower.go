// Package follower walks the chain forward block by block and waits at the
// tip for new blocks.
package follower

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/explorer"
	"go.uber.org/zap"
)

// Service follows the chain tip through an Explorer.
type Service struct {
	logger        *zap.Logger
	blocks        *explorer.Blocks
	handler       BlockHandler
	metrics       Metrics
	sleep         func(context.Context, time.Duration) error
	pollInterval  time.Duration
	retryInterval time.Duration
	blockSignal   <-chan struct{}
}

// NewService builds a Service. blockSignal may be nil, in which case the tip
// is polled.
func NewService(
	x *explorer.Explorer,
	handler BlockHandler,
	metrics Metrics,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Service, error) {
	if x == nil {
		return nil, errors.New("follower explorer is required")
	}
	if handler == nil {
		return nil, errors.New("follower block handler is required")
	}
	if metrics == nil {
		return nil, errors.New("follower metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:        logger.Named("follower"),
		blocks:        x.Blocks,
		handler:       handler,
		metrics:       metrics,
		sleep:         clock.SleepWithContext,
		pollInterval:  pollInterval,
		retryInterval: retryInterval,
		blockSignal:   blockSignal,
	}, nil
}

// Run handles the block at index from, then every following block, until
// the context is canceled or the handler fails. A negative index counts back
// from the tip.
func (s *Service) Run(ctx context.Context, from int64) error {
	block, err := s.blocks.ByIndex(ctx, from)
	if err != nil {
		return fmt.Errorf("start block %d: %w", from, err)
	}
	if err := s.handle(ctx, block); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		block, err = s.step(ctx, block)
		if err != nil {
			return err
		}
	}
}

func (s *Service) step(ctx context.Context, block *explorer.Block) (*explorer.Block, error) {
	next, err := block.NextBlock(ctx)
	switch {
	case err == nil:
		return next, s.handle(ctx, next)

	case errors.Is(err, explorer.ErrNoNextBlock):
		s.logger.Debug("at chain tip, waiting", zap.Stringer("block", block), zap.Duration("sleep", s.pollInterval))
		return block, s.wait(ctx, s.pollInterval)

	case errors.Is(err, explorer.ErrChainMismatch):
		s.metrics.ObserveReorg()
		depth, derr := block.Depth(ctx)
		if derr != nil {
			return block, derr
		}
		s.logger.Warn("chain reorganized, stepping back", zap.Uint64("depth", depth), zap.Error(err))
		if depth == 0 {
			return block, s.wait(ctx, s.retryInterval)
		}
		prev, perr := s.blocks.ByIndex(ctx, int64(depth-1))
		if perr != nil {
			return block, perr
		}
		return prev, s.handle(ctx, prev)

	case errors.Is(err, explorer.ErrRemoteUnavailable) && ctx.Err() == nil:
		s.logger.Warn("fetch next block failed, backing off", zap.Error(err), zap.Duration("sleep", s.retryInterval))
		return block, s.wait(ctx, s.retryInterval)

	default:
		return block, err
	}
}

func (s *Service) handle(ctx context.Context, block *explorer.Block) error {
	depth, err := block.Depth(ctx)
	if err != nil {
		return err
	}
	if err := s.handler.HandleBlock(ctx, block); err != nil {
		return fmt.Errorf("handle block %d: %w", depth, err)
	}
	s.metrics.ObserveBlock(depth)
	return nil
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}
