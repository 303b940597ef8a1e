package explorer

import (
	"context"
	"fmt"
	"math"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// Blocks looks up blocks by depth, negative index from the tip, or hash.
type Blocks struct {
	x *Explorer
}

// Get dispatches on the key type: integers are indices, hashes are given as
// model.Hash, 32 byte slices, 32 byte raw strings or 64 character hex strings.
func (b *Blocks) Get(ctx context.Context, key any) (*Block, error) {
	switch k := key.(type) {
	case int:
		return b.ByIndex(ctx, int64(k))
	case int8:
		return b.ByIndex(ctx, int64(k))
	case int16:
		return b.ByIndex(ctx, int64(k))
	case int32:
		return b.ByIndex(ctx, int64(k))
	case int64:
		return b.ByIndex(ctx, k)
	case uint8:
		return b.ByIndex(ctx, int64(k))
	case uint16:
		return b.ByIndex(ctx, int64(k))
	case uint32:
		return b.ByIndex(ctx, int64(k))
	case uint:
		return b.byUnsigned(ctx, uint64(k))
	case uint64:
		return b.byUnsigned(ctx, k)
	}

	hash, err := hashFromKey(key)
	if err != nil {
		return nil, err
	}
	return b.ByHash(hash), nil
}

func (b *Blocks) byUnsigned(ctx context.Context, depth uint64) (*Block, error) {
	if depth > math.MaxInt64 {
		return nil, fmt.Errorf("%w: depth %d", ErrOutOfRange, depth)
	}
	return b.ByIndex(ctx, int64(depth))
}

// ByIndex returns the block at depth index. A negative index counts back from
// the current tip, so -1 is the tip itself. The current height is fetched on
// every call.
func (b *Blocks) ByIndex(ctx context.Context, index int64) (*Block, error) {
	height, err := b.Len(ctx)
	if err != nil {
		return nil, err
	}
	// height here is the block count, tip depth is height-1.
	if index >= 0 {
		if uint64(index) >= height {
			return nil, fmt.Errorf("%w: depth %d past tip %d", ErrOutOfRange, index, height-1)
		}
		return b.at(uint64(index)), nil
	}

	back := uint64(-(index + 1)) + 1
	if back > height {
		return nil, fmt.Errorf("%w: index %d before genesis", ErrOutOfRange, index)
	}
	return b.at(height - back), nil
}

// ByHash returns an unresolved block proxy for hash without a remote call.
func (b *Blocks) ByHash(hash model.Hash) *Block {
	block := &Block{x: b.x}
	block.hash.seed(hash)
	return block
}

// Len returns the number of blocks in the chain, the current tip depth plus one.
func (b *Blocks) Len(ctx context.Context) (uint64, error) {
	tip, err := b.x.source.CurrentHeight(ctx)
	if err != nil {
		return 0, remoteError(err, "current height")
	}
	return tip + 1, nil
}

func (b *Blocks) at(depth uint64) *Block {
	block := &Block{x: b.x}
	block.depth.seed(depth)
	return block
}
