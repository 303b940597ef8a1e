package explorer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"go.uber.org/zap"
)

// Block is a lazily resolved block. It is created knowing either its depth or
// its hash; the other is resolved on demand.
type Block struct {
	x *Explorer

	depth        lazy[uint64]
	hash         lazy[model.Hash]
	header       lazy[model.BlockHeader]
	transactions lazy[[]*Transaction]
}

// Depth returns the block height, resolving it by hash if needed.
func (b *Block) Depth(ctx context.Context) (uint64, error) {
	return b.depth.get(func() (uint64, error) {
		hash, ok := b.hash.peek()
		if !ok {
			return 0, errors.New("block proxy has neither depth nor hash")
		}
		b.x.logger.Debug("resolve block depth", zap.Stringer("hash", hash))
		depth, err := b.x.source.DepthByHash(ctx, hash)
		if err != nil {
			return 0, remoteError(err, "depth of block %s", hash)
		}
		return depth, nil
	})
}

// Hash returns the block hash. For a block looked up by depth the hash is
// computed from the fetched header.
func (b *Block) Hash(ctx context.Context) (model.Hash, error) {
	return b.hash.get(func() (model.Hash, error) {
		header, err := b.Header(ctx)
		if err != nil {
			return model.Hash{}, err
		}
		return header.Hash(), nil
	})
}

// Header returns the 80 byte header fields. A known hash is the block's
// identity, so the header is fetched by hash whenever one is available; depth
// is only used for blocks looked up by index.
func (b *Block) Header(ctx context.Context) (model.BlockHeader, error) {
	return b.header.get(func() (model.BlockHeader, error) {
		if hash, ok := b.hash.peek(); ok {
			b.x.logger.Debug("resolve block header", zap.Stringer("hash", hash))
			header, err := b.x.source.HeaderByHash(ctx, hash)
			if err != nil {
				return model.BlockHeader{}, remoteError(err, "header of block %s", hash)
			}
			return header, nil
		}
		depth, ok := b.depth.peek()
		if !ok {
			return model.BlockHeader{}, errors.New("block proxy has neither depth nor hash")
		}
		b.x.logger.Debug("resolve block header", zap.Uint64("depth", depth))
		header, err := b.x.source.HeaderByDepth(ctx, depth)
		if err != nil {
			return model.BlockHeader{}, remoteError(err, "header of block %d", depth)
		}
		return header, nil
	})
}

// Version returns the header version.
func (b *Block) Version(ctx context.Context) (uint32, error) {
	h, err := b.Header(ctx)
	return h.Version, err
}

// PreviousBlockHash returns the hash this header commits to as its parent.
func (b *Block) PreviousBlockHash(ctx context.Context) (model.Hash, error) {
	h, err := b.Header(ctx)
	return h.PreviousBlockHash, err
}

// MerkleRoot returns the header merkle root.
func (b *Block) MerkleRoot(ctx context.Context) (model.Hash, error) {
	h, err := b.Header(ctx)
	return h.MerkleRoot, err
}

// Timestamp returns the header time in UTC.
func (b *Block) Timestamp(ctx context.Context) (time.Time, error) {
	h, err := b.Header(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(h.Timestamp), 0).UTC(), nil
}

// Bits returns the compact difficulty target.
func (b *Block) Bits(ctx context.Context) (uint32, error) {
	h, err := b.Header(ctx)
	return h.Bits, err
}

// Nonce returns the header nonce.
func (b *Block) Nonce(ctx context.Context) (uint32, error) {
	h, err := b.Header(ctx)
	return h.Nonce, err
}

// Transactions returns the block's transactions in block order. Each one
// already knows this block as its parent and its offset within it.
func (b *Block) Transactions(ctx context.Context) ([]*Transaction, error) {
	return b.transactions.get(func() ([]*Transaction, error) {
		var (
			hashes []model.Hash
			err    error
		)
		depth, depthKnown := b.depth.peek()
		hash, hashKnown := b.hash.peek()
		switch {
		case hashKnown:
			b.x.logger.Debug("resolve block transactions", zap.Stringer("hash", hash))
			hashes, err = b.x.source.TransactionHashesByHash(ctx, hash)
			if err != nil {
				return nil, remoteError(err, "transactions of block %s", hash)
			}
		case depthKnown:
			b.x.logger.Debug("resolve block transactions", zap.Uint64("depth", depth))
			hashes, err = b.x.source.TransactionHashesByDepth(ctx, depth)
			if err != nil {
				return nil, remoteError(err, "transactions of block %d", depth)
			}
		default:
			return nil, errors.New("block proxy has neither depth nor hash")
		}

		txs := make([]*Transaction, len(hashes))
		for i, txHash := range hashes {
			tx := newTransaction(b.x, txHash)
			tx.parent.seed(b)
			if depthKnown {
				tx.position.seed(model.TransactionIndex{Depth: depth, Offset: uint32(i)})
			}
			txs[i] = tx
		}
		return txs, nil
	})
}

// PreviousBlock returns the block at depth-1 after checking that its hash is
// the one this header commits to.
func (b *Block) PreviousBlock(ctx context.Context) (*Block, error) {
	depth, err := b.Depth(ctx)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		return nil, ErrNoPreviousBlock
	}
	header, err := b.Header(ctx)
	if err != nil {
		return nil, err
	}

	prev := b.x.Blocks.at(depth - 1)
	prevHash, err := prev.Hash(ctx)
	if err != nil {
		return nil, err
	}
	if prevHash != header.PreviousBlockHash {
		return nil, fmt.Errorf("%w: block %d points to %s, block %d is %s",
			ErrChainMismatch, depth, header.PreviousBlockHash, depth-1, prevHash)
	}
	return prev, nil
}

// NextBlock returns the block at depth+1 after checking that it points back
// to this block.
func (b *Block) NextBlock(ctx context.Context) (*Block, error) {
	depth, err := b.Depth(ctx)
	if err != nil {
		return nil, err
	}
	tip, err := b.x.source.CurrentHeight(ctx)
	if err != nil {
		return nil, remoteError(err, "current height")
	}
	if depth+1 > tip {
		return nil, ErrNoNextBlock
	}

	next := b.x.Blocks.at(depth + 1)
	nextHeader, err := next.Header(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := b.Hash(ctx)
	if err != nil {
		return nil, err
	}
	if nextHeader.PreviousBlockHash != hash {
		return nil, fmt.Errorf("%w: block %d points to %s, block %d is %s",
			ErrChainMismatch, depth+1, nextHeader.PreviousBlockHash, depth, hash)
	}
	return next, nil
}

// String prints the depth when known, otherwise the short hash.
func (b *Block) String() string {
	if depth, ok := b.depth.peek(); ok {
		return fmt.Sprintf("<Block %d>", depth)
	}
	if hash, ok := b.hash.peek(); ok {
		return fmt.Sprintf("<Block %s>", hash.Short())
	}
	return "<Block>"
}
